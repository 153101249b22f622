package hbm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fluentmap/internal/common"
	"fluentmap/model"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileName names the file of doc: "<pkg alias>.<Type><ext>", e.g. store.Order.hbm.xml.
func FileName(doc *model.HibernateMapping, f Format) string {
	return baseName(doc) + f.Extension()
}

// FileNames names the files of docs like FileName. Documents whose short
// names collide are named after the full import path instead
// ("github.com.acme.store.Order.hbm.xml"), and any name still taken gets a
// numeric suffix.
func FileNames(docs []*model.HibernateMapping, f Format) []string {
	count := make(map[string]int, len(docs))
	for _, doc := range docs {
		count[baseName(doc)]++
	}

	taken := make(map[string]struct{}, len(docs))
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		name := baseName(doc)
		if count[name] > 1 {
			name = qualifiedBaseName(doc)
		}

		unique := name
		for i := 2; ; i++ {
			if _, ok := taken[unique]; !ok {
				break
			}

			unique = fmt.Sprintf("%s-%d", name, i)
		}

		taken[unique] = struct{}{}
		names = append(names, unique+f.Extension())
	}

	return names
}

func baseName(doc *model.HibernateMapping) string {
	if cls, ok := common.First(doc.Classes); ok {
		return common.ShortName(cls.Name)
	}

	return "mapping"
}

func qualifiedBaseName(doc *model.HibernateMapping) string {
	if cls, ok := common.First(doc.Classes); ok {
		return strings.ReplaceAll(cls.Name, "/", ".")
	}

	return "mapping"
}

// WriteFiles writes every document to its own file in outputDir, creating
// the directory if needed, and returns the written paths.
func WriteFiles(outputDir string, docs []*model.HibernateMapping, f Format) ([]string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	names := FileNames(docs, f)
	paths := make([]string, 0, len(docs))

	for i, doc := range docs {
		content, err := Marshal(doc, f)
		if err != nil {
			return paths, err
		}

		outputPath := filepath.Join(outputDir, names[i])

		err = os.WriteFile(outputPath, content, filePerm)
		if err != nil {
			return paths, fmt.Errorf("writing file %s: %w", filepath.Base(outputPath), err)
		}

		paths = append(paths, outputPath)
	}

	return paths, nil
}
