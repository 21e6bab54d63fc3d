// Package emailparser is the public one-call facade over the parsing
// pipeline. It wires the default tables into a parser so library users can
// turn a bank notification email into a categorized transaction without
// touching the internal packages.
package emailparser

import (
	"sync"
	"time"

	"jsolano/mail-ledger/internal/bankdetect"
	"jsolano/mail-ledger/internal/categorizer"
	"jsolano/mail-ledger/internal/engine"
	"jsolano/mail-ledger/internal/extractor"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/store"
	"jsolano/mail-ledger/internal/textutils"
)

// Parser parses single emails with the embedded default tables.
type Parser struct {
	detector    *bankdetect.Detector
	extractor   *extractor.Extractor
	assembler   *engine.Assembler
	categorizer *categorizer.Categorizer
}

var (
	defaultParser *Parser
	defaultErr    error
	initOnce      sync.Once
)

// New builds a Parser from the embedded default tables. The logger may be
// nil.
func New(logger logging.Logger) (*Parser, error) {
	if logger == nil {
		logger = logging.NewMockLogger()
	}

	tables, err := store.LoadDefault()
	if err != nil {
		return nil, err
	}

	return &Parser{
		detector:    bankdetect.NewDetector(tables.Banks(), logger),
		extractor:   extractor.New(logger),
		assembler:   engine.NewAssembler(logger),
		categorizer: categorizer.New(tables.Categories(), logger),
	}, nil
}

// Parse extracts and categorizes one email. ok is false when the email holds
// no extractable amount and therefore yields no transaction.
func (p *Parser) Parse(email models.RawEmail) (models.CategorizedTransaction, bool) {
	bankID := p.detector.Detect(email.Sender)

	body := email.BodyText
	if body == "" || textutils.LooksLikeCSS(body) {
		if email.BodyHTML != "" {
			body = email.BodyHTML
		}
	}
	in := extractor.NewInput(email.Subject, textutils.Normalize(body), email.Date, time.Now())

	results := p.extractor.Extract(bankID, in)
	record, ok := p.assembler.Assemble(email.ID, in, results)
	if !ok {
		return models.CategorizedTransaction{}, false
	}
	return p.categorizer.Categorize(*record), true
}

// ParseEmail parses one email with a shared default Parser.
func ParseEmail(email models.RawEmail) (models.CategorizedTransaction, bool, error) {
	initOnce.Do(func() {
		defaultParser, defaultErr = New(nil)
	})
	if defaultErr != nil {
		return models.CategorizedTransaction{}, false, defaultErr
	}
	tx, ok := defaultParser.Parse(email)
	return tx, ok, nil
}
