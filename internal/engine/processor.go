package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"jsolano/mail-ledger/internal/bankdetect"
	"jsolano/mail-ledger/internal/categorizer"
	"jsolano/mail-ledger/internal/extractor"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/textutils"
)

// Below this batch size the worker pool costs more than it saves.
const concurrencyThreshold = 8

// Stats summarizes one batch run. Processed is the number of emails the
// batch attempted, and Parsed + Skipped + Failed always equals Processed.
type Stats struct {
	Processed int
	Parsed    int
	Skipped   int
	Failed    int
}

// Processor runs the full parse pipeline over a batch of emails: bank
// detection, body normalization, field extraction, record assembly and
// categorization. One email failing never aborts the batch.
type Processor struct {
	detector    *bankdetect.Detector
	extractor   *extractor.Extractor
	assembler   *Assembler
	categorizer *categorizer.Categorizer
	logger      logging.Logger
	workers     int
	now         func() time.Time
}

// NewProcessor creates a Processor. workers <= 0 selects runtime.NumCPU.
func NewProcessor(
	detector *bankdetect.Detector,
	ext *extractor.Extractor,
	assembler *Assembler,
	cat *categorizer.Categorizer,
	logger logging.Logger,
	workers int,
) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		detector:    detector,
		extractor:   ext,
		assembler:   assembler,
		categorizer: cat,
		logger:      logger,
		workers:     workers,
		now:         time.Now,
	}
}

// outcome is the per-email result slot. Exactly one of tx, skipped or failed
// is set.
type outcome struct {
	tx      *models.CategorizedTransaction
	skipped bool
	failed  bool
}

// Process parses every email in the batch and returns the categorized
// transactions in input order. Small batches run sequentially; larger ones
// fan out over the worker pool. Context cancellation stops the batch early
// and returns the transactions completed so far along with ctx.Err().
func (p *Processor) Process(ctx context.Context, emails []models.RawEmail) ([]models.CategorizedTransaction, Stats, error) {
	if len(emails) == 0 {
		return nil, Stats{}, nil
	}

	p.logger.Info("Processing email batch",
		logging.F("count", len(emails)),
		logging.F("workers", p.workers))

	outcomes := make([]outcome, len(emails))

	var err error
	if len(emails) < concurrencyThreshold || p.workers == 1 {
		err = p.runSequential(ctx, emails, outcomes)
	} else {
		err = p.runConcurrent(ctx, emails, outcomes)
	}

	var txs []models.CategorizedTransaction
	stats := Stats{}
	for _, out := range outcomes {
		switch {
		case out.tx != nil:
			txs = append(txs, *out.tx)
			stats.Parsed++
		case out.skipped:
			stats.Skipped++
		case out.failed:
			stats.Failed++
		default:
			continue // not reached under cancellation
		}
		stats.Processed++
	}

	p.logger.Info("Batch complete",
		logging.F("processed", stats.Processed),
		logging.F("parsed", stats.Parsed),
		logging.F("skipped", stats.Skipped),
		logging.F("failed", stats.Failed))

	return txs, stats, err
}

func (p *Processor) runSequential(ctx context.Context, emails []models.RawEmail, outcomes []outcome) error {
	for i, email := range emails {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		outcomes[i] = p.processOne(email)
	}
	return nil
}

// runConcurrent fans the batch out over the worker pool. Each job carries
// its batch index so results land in their input slots no matter which
// worker finishes first.
func (p *Processor) runConcurrent(ctx context.Context, emails []models.RawEmail, outcomes []outcome) error {
	type job struct {
		index int
		email models.RawEmail
	}

	jobs := make(chan job)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcomes[j.index] = p.processOne(j.email)
			}
		}()
	}

	var err error
submit:
	for i, email := range emails {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break submit
		case jobs <- job{index: i, email: email}:
		}
	}
	close(jobs)
	wg.Wait()

	return err
}

// processOne parses a single email. A panic inside any extractor is contained
// here and converted into a failed outcome, so one malformed email cannot
// take down the batch.
func (p *Processor) processOne(email models.RawEmail) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Panic while parsing email",
				logging.F("email_id", email.ID),
				logging.F("panic", fmt.Sprintf("%v", r)))
			out = outcome{failed: true}
		}
	}()

	bankID := p.detector.Detect(email.Sender)
	body := textutils.Normalize(bodySource(email))
	in := extractor.NewInput(email.Subject, body, email.Date, p.now())

	results := p.extractor.Extract(bankID, in)

	record, ok := p.assembler.Assemble(email.ID, in, results)
	if !ok {
		return outcome{skipped: true}
	}

	tx := p.categorizer.Categorize(*record)
	return outcome{tx: &tx}
}

// bodySource picks which body variant to normalize. Plaintext is preferred,
// but some notifications ship a text part that is only the message's
// stylesheet; those fall through to the HTML part.
func bodySource(email models.RawEmail) string {
	if email.BodyText != "" && !textutils.LooksLikeCSS(email.BodyText) {
		return email.BodyText
	}
	if email.BodyHTML != "" {
		return email.BodyHTML
	}
	return email.BodyText
}
