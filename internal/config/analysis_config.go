package config

import "os"

type AnalysisConfig interface {
	GetLLMAPIKey() string
	GetLLMModelName() string
}

type Analysis struct{}

var _ AnalysisConfig = Analysis{}

func (Analysis) GetLLMAPIKey() string {
	return os.Getenv("LLM_API_KEY")
}

func (Analysis) GetLLMModelName() string {
	return GetEnv("LLM_MODEL_NAME", "gemini-2.0-flash-exp")
}
