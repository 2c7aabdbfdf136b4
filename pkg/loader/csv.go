// Package loader reads and writes graph content in the two supported bulk
// formats: CSV record files (one for entities, one for relationships) and the
// JSON snapshot document.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lorebase/lorebase/pkg/graph"
)

// LoadEntitiesCSV parses entity records. The header must contain "id" and
// "type"; every other column becomes a property. Empty cells are skipped.
func LoadEntitiesCSV(r io.Reader) ([]graph.Entity, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(header, "id", "type"); err != nil {
		return nil, err
	}

	entities := make([]graph.Entity, 0, len(rows))
	for _, row := range rows {
		e := graph.Entity{Properties: map[string]string{}}
		for i, col := range header {
			if i >= len(row) {
				break
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			switch col {
			case "id":
				e.ID = value
			case "type":
				e.Type = value
			default:
				e.Properties[col] = value
			}
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// LoadRelationshipsCSV parses relationship records. The header must contain
// "source", "target" and "type"; an "id" column is optional and every other
// column becomes a property.
func LoadRelationshipsCSV(r io.Reader) ([]graph.Relationship, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(header, "source", "target", "type"); err != nil {
		return nil, err
	}

	relationships := make([]graph.Relationship, 0, len(rows))
	for _, row := range rows {
		rel := graph.Relationship{Properties: map[string]string{}}
		for i, col := range header {
			if i >= len(row) {
				break
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			switch col {
			case "id":
				rel.ID = value
			case "source":
				rel.SourceID = value
			case "target":
				rel.TargetID = value
			case "type":
				rel.Type = value
			default:
				rel.Properties[col] = value
			}
		}
		relationships = append(relationships, rel)
	}
	return relationships, nil
}

// ExportEntitiesCSV writes entity records with an "id" and "type" column plus
// one column per property key found anywhere in the input.
func ExportEntitiesCSV(w io.Writer, entities []graph.Entity) error {
	propKeys := collectKeys(len(entities), func(i int) map[string]string {
		return entities[i].Properties
	})

	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"id", "type"}, propKeys...)); err != nil {
		return err
	}
	for _, e := range entities {
		row := []string{e.ID, e.Type}
		for _, k := range propKeys {
			row = append(row, e.Properties[k])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportRelationshipsCSV writes relationship records with "id", "source",
// "target" and "type" columns plus one column per property key.
func ExportRelationshipsCSV(w io.Writer, relationships []graph.Relationship) error {
	propKeys := collectKeys(len(relationships), func(i int) map[string]string {
		return relationships[i].Properties
	})

	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"id", "source", "target", "type"}, propKeys...)); err != nil {
		return err
	}
	for _, r := range relationships {
		row := []string{r.ID, r.SourceID, r.TargetID, r.Type}
		for _, k := range propKeys {
			row = append(row, r.Properties[k])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("parse csv: missing header row")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}
	return header, records[1:], nil
}

func requireColumns(header []string, required ...string) error {
	for _, want := range required {
		found := false
		for _, col := range header {
			if col == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("parse csv: missing required column %q", want)
		}
	}
	return nil
}

func collectKeys(n int, props func(int) map[string]string) []string {
	seen := make(map[string]bool)
	var keys []string
	for i := 0; i < n; i++ {
		for k := range props(i) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
