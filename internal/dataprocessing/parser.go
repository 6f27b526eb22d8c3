package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"salescli/internal/config"
	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// ParseStats accounts for every line handed to the parser. Header and
// blank lines are skipped without counting as rejections; malformed and
// non-numeric lines are the parse-stage rejections.
type ParseStats struct {
	TotalLines  int `json:"total_lines"`
	HeaderLines int `json:"header_lines"`
	BlankLines  int `json:"blank_lines"`
	Malformed   int `json:"malformed"`
	NonNumeric  int `json:"non_numeric"`
	Parsed      int `json:"parsed"`
}

// Rejected returns the number of lines dropped at the parse stage.
func (s ParseStats) Rejected() int {
	return s.Malformed + s.NonNumeric
}

// ParseLine turns one raw feed line into a structurally valid transaction
// candidate. Structural validity means the line has at least the required
// field count and its numeric fields coerce; it says nothing about the
// business rules, which the validator applies afterwards.
//
// The first eight fields are taken positionally; trailing extras are
// ignored so newer feeds with appended columns still parse. Thousands
// separators are stripped before numeric coercion, and commas are stripped
// from the product name because the legacy format uses them as a secondary
// token inside that field.
func ParseLine(line string) (domain.Transaction, error) {
	fields := strings.Split(line, config.FieldDelimiter)
	if len(fields) < config.RequiredFieldCount {
		return domain.Transaction{}, fmt.Errorf("%w: got %d fields, need %d",
			apperrors.ErrMalformedShape, len(fields), config.RequiredFieldCount)
	}

	for i := 0; i < config.RequiredFieldCount; i++ {
		fields[i] = strings.TrimSpace(fields[i])
	}

	quantity, err := strconv.Atoi(strings.ReplaceAll(fields[4], config.ThousandsSeparator, ""))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: quantity %q", apperrors.ErrNonNumericField, fields[4])
	}

	unitPrice, err := strconv.ParseFloat(strings.ReplaceAll(fields[5], config.ThousandsSeparator, ""), 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: unit price %q", apperrors.ErrNonNumericField, fields[5])
	}

	return domain.Transaction{
		TransactionID: fields[0],
		Date:          fields[1],
		ProductID:     fields[2],
		ProductName:   strings.ReplaceAll(fields[3], ",", ""),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    fields[6],
		Region:        fields[7],
	}, nil
}

// Parser runs ParseLine over a whole feed and accounts for every line.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a feed parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseAll parses all raw lines into transaction candidates. Rejected
// lines are counted, logged at debug level, and never surface as errors.
func (p *Parser) ParseAll(ctx context.Context, lines []string) ([]domain.Transaction, ParseStats) {
	stats := ParseStats{TotalLines: len(lines)}
	candidates := make([]domain.Transaction, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			stats.BlankLines++
			continue
		}
		if strings.HasPrefix(trimmed, config.HeaderColumnName) {
			stats.HeaderLines++
			continue
		}

		tx, err := ParseLine(line)
		if err != nil {
			if errors.Is(err, apperrors.ErrMalformedShape) {
				stats.Malformed++
			} else {
				stats.NonNumeric++
			}
			p.logger.DebugContext(ctx, "dropped unparseable line",
				slog.Int("line_number", i+1),
				slog.String("reason", err.Error()))
			continue
		}

		candidates = append(candidates, tx)
		stats.Parsed++
	}

	p.logger.InfoContext(ctx, "parsed sales feed",
		slog.Int("total_lines", stats.TotalLines),
		slog.Int("parsed", stats.Parsed),
		slog.Int("malformed", stats.Malformed),
		slog.Int("non_numeric", stats.NonNumeric))

	return candidates, stats
}
