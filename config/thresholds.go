package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// thresholdsFile is the YAML layout of a thresholds override file:
//
//	monthly:
//	  housing: 0.35
//	weekly:
//	  food: 0.05
type thresholdsFile struct {
	Weekly  map[string]float64 `yaml:"weekly"`
	Monthly map[string]float64 `yaml:"monthly"`
	Yearly  map[string]float64 `yaml:"yearly"`
}

// LoadThresholds returns the built-in threshold table with the overrides of the
// YAML file at path applied. An empty path returns the built-in table.
//
// Shares are fractions of income. A share of zero disables the category.
func LoadThresholds(path string) (aggregation.ThresholdTable, error) {
	table := aggregation.DefaultThresholdTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("failed to read thresholds file: %w", err)
	}

	overrides, err := ParseThresholds(data)
	if err != nil {
		return table, fmt.Errorf("invalid thresholds file %s: %w", path, err)
	}

	return table.Override(overrides), nil
}

// ParseThresholds decodes a thresholds override document.
func ParseThresholds(data []byte) (aggregation.ThresholdTable, error) {
	var file thresholdsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return aggregation.ThresholdTable{}, nil
		}
		return aggregation.ThresholdTable{}, err
	}

	var errs []error
	for name, table := range map[string]map[string]float64{
		"weekly":  file.Weekly,
		"monthly": file.Monthly,
		"yearly":  file.Yearly,
	} {
		errs = append(errs, validateThresholds(name, table)...)
	}
	if err := errors.Join(errs...); err != nil {
		return aggregation.ThresholdTable{}, err
	}

	return aggregation.ThresholdTable{
		Weekly:  file.Weekly,
		Monthly: file.Monthly,
		Yearly:  file.Yearly,
	}, nil
}

func validateThresholds(granularity string, table map[string]float64) []error {
	categories := make([]string, 0, len(table))
	for c := range table {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var errs []error
	for _, category := range categories {
		share := table[category]
		if !entity.IsCategoryAllowed(entity.TransactionKindExpense, category) {
			errs = append(errs, fmt.Errorf("%s: %q is not an expense category", granularity, category))
			continue
		}
		if share < 0 || share > 1 || share != share {
			errs = append(errs, fmt.Errorf("%s: share of %q must be between 0 and 1, got %v", granularity, category, share))
		}
	}
	return errs
}
