// Package catalogfile loads catalog seed files into a lending.Service.
//
// A seed file is YAML:
//
//	items:
//	  - identifier: 978-0134685991
//	    title: Effective Java
//	    author: Joshua Bloch
//	    year: 2018
package catalogfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

var (
	// ErrReadingCatalogFileFailed is returned when the seed file can't be read or parsed.
	ErrReadingCatalogFileFailed = errors.New("reading catalog file failed")

	// ErrInvalidCatalogFile is returned when a record of the seed file doesn't validate.
	ErrInvalidCatalogFile = errors.New("invalid catalog file")

	// ErrSeedingFailed is returned when the Service rejected items of the seed file.
	ErrSeedingFailed = errors.New("seeding the catalog failed")
)

// Record is one item of a seed file.
type Record struct {
	Identifier string `yaml:"identifier" validate:"required"`
	Title      string `yaml:"title" validate:"required"`
	Author     string `yaml:"author" validate:"required"`
	Year       int    `yaml:"year" validate:"gte=0,lte=9999"`
}

type file struct {
	Items []Record `yaml:"items" validate:"min=1,unique=Identifier,dive"`
}

// Parse reads and validates a seed file. Unknown keys are rejected.
func Parse(r io.Reader) ([]lending.Item, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var seed file
	if err := decoder.Decode(&seed); err != nil {
		return nil, errors.Join(ErrReadingCatalogFileFailed, err)
	}

	if err := validator.New().Struct(seed); err != nil {
		return nil, errors.Join(ErrInvalidCatalogFile, err)
	}

	items := make([]lending.Item, 0, len(seed.Items))
	for _, record := range seed.Items {
		items = append(items, lending.BuildItem(record.Identifier, record.Title, record.Author, record.Year))
	}

	return items, nil
}

// Load reads and validates the seed file at path.
func Load(path string) ([]lending.Item, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingCatalogFileFailed, err)
	}

	return Parse(bytes.NewReader(content))
}

// Seed adds the items to the service. Items the catalog rejects don't stop the others;
// their failures are returned together.
func Seed(service *lending.Service, items []lending.Item) (int, error) {
	var failures []error
	added := 0

	for _, item := range items {
		result := service.AddItem(item)
		if !result.Succeeded() {
			failures = append(failures, fmt.Errorf("%s: %w", item.Identifier, result.Err()))
			continue
		}

		added++
	}

	if len(failures) > 0 {
		return added, errors.Join(append([]error{ErrSeedingFailed}, failures...)...)
	}

	return added, nil
}
