// Package loader reads the static GTFS schedule into in-memory tables.
// The source may be a zip archive, a directory of extracted .txt files, or
// an http(s) URL, in which case the zip is downloaded into the cache
// directory first.
package loader

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ptvplanner/internal/common/logger"
	"github.com/ptvplanner/pkg/gtfs"
	"github.com/ptvplanner/pkg/table"
)

type Loader struct {
	logger logger.Logger
}

func New(log logger.Logger) *Loader {
	return &Loader{logger: log}
}

// requiredFiles must be present in the source; the calendar files are
// optional and default to empty tables.
var requiredFiles = map[string]bool{
	gtfs.FileRoutes:        true,
	gtfs.FileStops:         true,
	gtfs.FileTrips:         true,
	gtfs.FileStopTimes:     true,
	gtfs.FileCalendar:      false,
	gtfs.FileCalendarDates: false,
}

// Load reads the schedule tables from source. cacheDir is where a remote
// zip is downloaded to.
func (l *Loader) Load(ctx context.Context, source, cacheDir string) (*gtfs.Tables, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		destPath := filepath.Join(cacheDir, "gtfs_static.zip")
		if _, err := os.Stat(destPath); err != nil {
			if err := Download(ctx, source, destPath, l.logger); err != nil {
				return nil, fmt.Errorf("downloading schedule: %w", err)
			}
		} else {
			l.logger.Info("Reusing downloaded schedule", "path", destPath)
		}
		source = destPath
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("locating schedule source: %w", err)
	}

	var tables *gtfs.Tables
	if info.IsDir() {
		tables, err = l.loadDir(source)
	} else {
		tables, err = l.loadZip(source)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("Schedule loaded",
		"routes", tables.Routes.Len(),
		"stops", tables.Stops.Len(),
		"trips", tables.Trips.Len(),
		"stop_times", tables.StopTimes.Len(),
		"calendar", tables.Calendar.Len(),
		"calendar_dates", tables.CalendarDates.Len(),
	)
	return tables, nil
}

func (l *Loader) loadZip(path string) (*gtfs.Tables, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening zip file: %w", err)
	}
	defer reader.Close()

	fileMap := make(map[string]*zip.File)
	for _, file := range reader.File {
		fileMap[file.Name] = file
	}

	tables := gtfs.Empty()
	for name, required := range requiredFiles {
		file, exists := fileMap[name]
		if !exists {
			if required {
				return nil, fmt.Errorf("schedule is missing %s", name)
			}
			l.logger.Debug("File not found in archive", "file", name)
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		tbl, err := parseCSV(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		setTable(tables, name, tbl)
		l.logger.Debug("File parsed", "name", name, "records", tbl.Len())
	}
	return tables, nil
}

func (l *Loader) loadDir(dir string) (*gtfs.Tables, error) {
	tables := gtfs.Empty()
	for name, required := range requiredFiles {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) && !required {
				l.logger.Debug("File not found in directory", "file", name)
				continue
			}
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		tbl, err := parseCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		setTable(tables, name, tbl)
		l.logger.Debug("File parsed", "name", name, "records", tbl.Len())
	}
	return tables, nil
}

func setTable(tables *gtfs.Tables, name string, tbl *table.Table) {
	switch name {
	case gtfs.FileRoutes:
		tables.Routes = tbl
	case gtfs.FileStops:
		tables.Stops = tbl
	case gtfs.FileTrips:
		tables.Trips = tbl
	case gtfs.FileStopTimes:
		tables.StopTimes = tbl
	case gtfs.FileCalendar:
		tables.Calendar = tbl
	case gtfs.FileCalendarDates:
		tables.CalendarDates = tbl
	}
}

func parseCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Variable number of fields
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return table.New(nil), nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		// Some agency exports lead with a UTF-8 BOM
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var rows []table.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		row := make(table.Row, len(header))
		for i, h := range header {
			if h == "" || i >= len(record) {
				continue
			}
			row[h] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return table.New(rows), nil
}
