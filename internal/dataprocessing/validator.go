package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"salescli/pkg/contracts/domain"
)

// FilterOptions are the optional caller-supplied filters applied after
// business validation. A nil bound means the bound is not applied.
type FilterOptions struct {
	Region    string
	MinAmount *float64
	MaxAmount *float64
}

// FilterSummary reports what happened to every candidate handed to the
// validator. Filter exclusions are a distinct category on top of valid
// records, never overlapping with the invalid count, so
// Invalid + FilteredByRegion + FilteredByAmount + FinalCount == TotalInput.
type FilterSummary struct {
	TotalInput       int            `json:"total_input"`
	Invalid          int            `json:"invalid"`
	FilteredByRegion int            `json:"filtered_by_region"`
	FilteredByAmount int            `json:"filtered_by_amount"`
	FinalCount       int            `json:"final_count"`
	RuleViolations   map[string]int `json:"rule_violations,omitempty"`
}

// Validator applies the business rules declared on domain.Transaction and
// the optional caller filters. All rules are evaluated as a conjunction: a
// record failing any rule is invalid, with no partial acceptance.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a transaction validator.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		validate: validator.New(),
		logger:   logger,
	}
}

// Apply validates candidates in order and then applies the optional
// filters to the valid ones. Input order is preserved in the result.
// Rule-level counts are retained in the summary for diagnostics, but
// downstream stages only ever see the accepted set and the totals.
func (v *Validator) Apply(ctx context.Context, candidates []domain.Transaction, opts FilterOptions) ([]domain.Transaction, FilterSummary) {
	summary := FilterSummary{
		TotalInput:     len(candidates),
		RuleViolations: make(map[string]int),
	}
	accepted := make([]domain.Transaction, 0, len(candidates))

	for _, tx := range candidates {
		if err := v.validate.Struct(tx); err != nil {
			summary.Invalid++
			v.recordViolations(err, &summary)
			continue
		}

		if opts.Region != "" && tx.Region != opts.Region {
			summary.FilteredByRegion++
			continue
		}

		total := tx.TotalSales()
		if (opts.MinAmount != nil && total < *opts.MinAmount) ||
			(opts.MaxAmount != nil && total > *opts.MaxAmount) {
			summary.FilteredByAmount++
			continue
		}

		accepted = append(accepted, tx)
	}

	summary.FinalCount = len(accepted)

	v.logger.InfoContext(ctx, "validated transactions",
		slog.Int("total_input", summary.TotalInput),
		slog.Int("invalid", summary.Invalid),
		slog.Int("filtered_by_region", summary.FilteredByRegion),
		slog.Int("filtered_by_amount", summary.FilteredByAmount),
		slog.Int("final_count", summary.FinalCount))

	return accepted, summary
}

// recordViolations counts each violated rule as "Field.tag".
func (v *Validator) recordViolations(err error, summary *FilterSummary) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		summary.RuleViolations["unknown"]++
		return
	}
	for _, fe := range fieldErrs {
		summary.RuleViolations[fmt.Sprintf("%s.%s", fe.Field(), fe.Tag())]++
	}
}
