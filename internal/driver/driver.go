// Package driver orchestrates a document translation pass: it walks
// translation units in document order, threads a rolling context window
// from each unit's output into the next call, and writes results back
// onto the original run boundaries.
//
// Units inside one document form a sequential dependency chain — each
// unit's context is derived from the previous unit's translation — so the
// driver is strictly single-threaded per document. Independent documents
// are the only safe parallelism boundary (see TranslateBatch).
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dverbin/doctran/internal"
	"github.com/dverbin/doctran/internal/chunker"
	"github.com/dverbin/doctran/internal/detector"
	"github.com/dverbin/doctran/internal/docpkg"
	"github.com/dverbin/doctran/internal/markup"
	"github.com/dverbin/doctran/internal/postprocess"
	"github.com/dverbin/doctran/internal/translator"
	"github.com/dverbin/doctran/internal/validator"
)

// ErrEmptyTranslation reports that a non-empty source produced no
// translated output at all — a systemic upstream failure rather than a
// per-unit problem.
var ErrEmptyTranslation = errors.New("translation produced no output")

// UnitError identifies the unit whose translation failed in strict mode.
type UnitError struct {
	Unit  int
	Cause error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("translation failed for unit %d: %v", e.Unit, e.Cause)
}

func (e *UnitError) Unwrap() error { return e.Cause }

// Warning records a recovered per-unit problem: a failed unit whose
// original text was preserved, a segment-count mismatch after a
// delimiter-joined call, or a unit that validated to the wrong language.
type Warning struct {
	Unit    int
	Part    string
	Message string
}

// Report summarizes one document translation pass.
type Report struct {
	Units      int
	Translated int
	Skipped    int
	Warnings   []Warning
}

func (r *Report) warnf(unit int, part, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Unit: unit, Part: part, Message: fmt.Sprintf(format, args...)})
}

// Driver runs the pipeline against one translation service. A nil
// detector disables source auto-detection (an empty source language is
// passed through and the service infers it); a nil validator disables the
// target-language check.
type Driver struct {
	svc    translator.TranslationService
	svcCfg translator.ServiceConfig
	det    *detector.Detector
	val    *validator.Validator
	log    *slog.Logger
}

func New(svc translator.TranslationService, svcCfg translator.ServiceConfig, det *detector.Detector, val *validator.Validator, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{svc: svc, svcCfg: svcCfg, det: det, val: val, log: log}
}

// TranslatePackage translates the document package at inputPath and
// writes the result to outputPath. Only the markup parts' text content
// changes; every other archive member passes through byte-identical.
func (d *Driver) TranslatePackage(ctx context.Context, inputPath, outputPath string, cfg internal.TranslationConfig) (*Report, error) {
	cfg = cfg.Normalized()

	parts, names, err := docpkg.Extract(inputPath)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	pass := &pass{cfg: cfg, report: report}
	mutated := make(map[string][]byte, len(names))

	for _, name := range names {
		tree, err := markup.Parse(parts[name])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", docpkg.ErrMalformedPackage, name, err)
		}

		// The rolling context does not carry across parts: headers and
		// footers are independent of the body's narrative flow.
		pass.context = ""
		pass.part = name
		if err := d.translateTree(ctx, tree, pass); err != nil {
			return report, err
		}

		data, err := tree.Bytes()
		if err != nil {
			return report, fmt.Errorf("serialize %s: %w", name, err)
		}
		mutated[name] = data
	}

	if report.Units > 0 && pass.translatedRunes == 0 {
		return report, ErrEmptyTranslation
	}

	if err := docpkg.Reassemble(inputPath, outputPath, mutated); err != nil {
		return report, err
	}

	d.log.Info("document translated",
		"input", inputPath,
		"units", report.Units,
		"translated", report.Translated,
		"skipped", report.Skipped,
		"warnings", len(report.Warnings))
	return report, nil
}

// pass carries the mutable state of one document translation pass. It is
// an explicit value scoped to the pass, never shared across documents.
type pass struct {
	cfg             internal.TranslationConfig
	report          *Report
	part            string
	context         string
	unit            int
	translatedRunes int
}

// translateTree walks one part's paragraphs in document order. With
// BatchParagraphs set, all segments of a paragraph go out in a single
// delimiter-joined call; otherwise each merged segment is its own call.
func (d *Driver) translateTree(ctx context.Context, tree *markup.Tree, p *pass) error {
	for _, segs := range tree.Paragraphs() {
		if p.cfg.BatchParagraphs && len(segs) > 1 {
			if err := d.translateParagraph(ctx, segs, p); err != nil {
				return err
			}
			continue
		}
		for _, seg := range segs {
			translated, ok, err := d.translateUnit(ctx, seg.Text(), p)
			if err != nil {
				return err
			}
			if ok {
				seg.WriteBack(translated)
			}
		}
	}
	return nil
}

// translateParagraph joins a paragraph's segments with the unit delimiter,
// translates them in one call, and redistributes the parts back onto the
// segment anchors. A delimiter-count mismatch is repaired by padding or
// truncation, with a warning.
func (d *Driver) translateParagraph(ctx context.Context, segs []*markup.Segment, p *pass) error {
	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text()
	}

	translated, ok, err := d.translateUnit(ctx, chunker.JoinUnits(texts), p)
	if err != nil || !ok {
		return err
	}

	parts, matched := chunker.SplitUnits(translated, len(segs))
	if !matched {
		p.report.warnf(p.unit-1, p.part,
			"segment count mismatch: expected %d delimited parts", len(segs))
		d.log.Warn("segment count mismatch", "part", p.part, "expected", len(segs))
	}
	for i, seg := range segs {
		seg.WriteBack(parts[i])
	}
	return nil
}

// translateUnit performs one logical translation: skip check, source
// resolution, the capability call (chunked when the unit exceeds the size
// limit), post-processing, context update, and failure policy. ok is
// false when the unit was skipped or failed in continue-on-error mode.
func (d *Driver) translateUnit(ctx context.Context, text string, p *pass) (string, bool, error) {
	// One cancellation checkpoint per unit, no finer.
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" || utf8.RuneCountInString(trimmed) == 1 {
		p.report.Skipped++
		return text, false, nil
	}

	unit := p.unit
	p.unit++
	p.report.Units++

	sourceLang := d.resolveSource(p.cfg.SourceLang, text)

	translated, err := d.callCapability(ctx, text, sourceLang, p)
	if err != nil {
		if !p.cfg.ContinueOnError {
			return "", false, &UnitError{Unit: unit, Cause: err}
		}
		p.report.warnf(unit, p.part, "unit left untranslated: %v", err)
		d.log.Warn("translation unit failed", "part", p.part, "unit", unit, "error", err)
		return "", false, nil
	}

	translated = postprocess.SwissSpelling(translated)
	// The capability strips trailing whitespace; a source carriage return
	// has to be reattached explicitly.
	if strings.HasSuffix(text, "\r") && !strings.HasSuffix(translated, "\r") {
		translated += "\r"
	}

	if d.val != nil {
		if ok, verr := d.val.IsValid(translated, p.cfg.TargetLang); !ok {
			p.report.warnf(unit, p.part, "result language check failed: %v", verr)
		}
	}

	p.report.Translated++
	p.translatedRunes += utf8.RuneCountInString(translated)
	p.context = chunker.ContextTail(translated, p.cfg.MaxContextLength)
	return translated, true, nil
}

// callCapability invokes the translation service for one unit, splitting
// oversized units into sentence-bounded chunks translated sequentially
// with the rolling context threaded between them.
func (d *Driver) callCapability(ctx context.Context, text, sourceLang string, p *pass) (string, error) {
	if utf8.RuneCountInString(text) <= p.cfg.MaxChunkLength {
		return d.callOnce(ctx, text, sourceLang, p.context, p.cfg)
	}

	chunks := chunker.Split(text, p.cfg.MaxChunkLength, p.cfg.OverlapWindow)
	translated := make([]string, 0, len(chunks))
	chunkCtx := p.context
	for _, chunk := range chunks {
		out, err := d.callOnce(ctx, chunk, sourceLang, chunkCtx, p.cfg)
		if err != nil {
			return "", err
		}
		translated = append(translated, out)
		chunkCtx = chunker.ContextTail(out, p.cfg.MaxContextLength)
	}
	return strings.Join(translated, " "), nil
}

func (d *Driver) callOnce(ctx context.Context, text, sourceLang, prevContext string, cfg internal.TranslationConfig) (string, error) {
	result, err := d.svc.Translate(ctx, d.svcCfg, translator.TranslateRequest{
		Text:            text,
		SourceLang:      sourceLang,
		TargetLang:      cfg.TargetLang,
		Tone:            cfg.Tone,
		Domain:          cfg.Domain,
		Glossary:        cfg.Glossary,
		Context:         prevContext,
		PreserveMarkers: cfg.PreserveMarkers,
	})
	if err != nil {
		return "", err
	}
	if result == nil || result.TranslatedText == "" {
		return "", fmt.Errorf("service %s returned no result", d.svc.Name())
	}
	return result.TranslatedText, nil
}

// resolveSource settles the source language for one unit. "auto" (or
// empty) asks the detector; when detection fails the service receives an
// empty source language and infers it itself.
func (d *Driver) resolveSource(configured, text string) string {
	if configured != "" && configured != "auto" {
		return configured
	}
	if d.det == nil {
		return ""
	}
	code, ok := d.det.DetectISO(text)
	if !ok {
		return ""
	}
	return code
}

// TranslateText translates free-form text: the whole input is chunked at
// sentence boundaries, the chunks are translated sequentially with the
// rolling context threaded between them, and the results are joined with
// single spaces. Failed chunks keep their original text in
// continue-on-error mode.
func (d *Driver) TranslateText(ctx context.Context, text string, cfg internal.TranslationConfig) (string, *Report, error) {
	cfg = cfg.Normalized()
	report := &Report{}
	p := &pass{cfg: cfg, report: report, part: "text"}

	chunks := chunker.Split(text, cfg.MaxChunkLength, cfg.OverlapWindow)
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		translated, ok, err := d.translateUnit(ctx, chunk, p)
		if err != nil {
			return "", report, err
		}
		if !ok && translated == "" {
			// Failed chunk: keep the original so the output stays complete.
			translated = chunk
		}
		out = append(out, strings.TrimSpace(translated))
	}

	if report.Units > 0 && p.translatedRunes == 0 {
		return "", report, ErrEmptyTranslation
	}
	return strings.Join(out, " "), report, nil
}
