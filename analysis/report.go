package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ReportStore persists generated reports as markdown files under a single
// folder.
type ReportStore struct {
	folder string
}

func NewReportStore(folder string) *ReportStore {
	return &ReportStore{folder: folder}
}

// Save writes the report and returns the path it was written to. An
// existing file with the same name is never overwritten; a counter is
// inserted before the extension instead.
func (s *ReportStore) Save(filename, markdown string) (string, error) {
	if err := os.MkdirAll(s.folder, 0o755); err != nil {
		return "", errors.Wrap(err, "[ReportStore.Save] creating reports folder")
	}

	path := filepath.Join(s.folder, s.uniqueName(filename))
	if err := os.WriteFile(path, []byte(strings.TrimSpace(markdown)), 0o644); err != nil {
		return "", errors.Wrap(err, "[ReportStore.Save] writing report")
	}

	log.Info().Str("path", path).Msg("analysis report saved")
	return path, nil
}

func (s *ReportStore) uniqueName(filename string) string {
	if _, err := os.Stat(filepath.Join(s.folder, filename)); os.IsNotExist(err) {
		return filename
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s_(%d)%s", base, counter, ext)
		if _, err := os.Stat(filepath.Join(s.folder, candidate)); os.IsNotExist(err) {
			return candidate
		}
	}
}
