package parse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inful/supercollider/internal/doc"
	ferrors "github.com/inful/supercollider/internal/foundation/errors"
)

func waitResult(t *testing.T, job *Job) Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := job.Wait(ctx)
	require.NoError(t, err)
	return res
}

func texts(records []doc.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, strings.TrimSpace(r.Text))
	}
	return out
}

// lineExtractor emits one block per non-empty line, sleeping longer for
// earlier files so completion order differs from scan order.
func lineExtractor() Extractor {
	return ExtractorFunc(func(_ context.Context, path string, src []byte) (*Extraction, error) {
		if strings.HasPrefix(path, "slow") {
			time.Sleep(20 * time.Millisecond)
		}
		out := &Extraction{}
		for i, l := range strings.Split(string(src), "\n") {
			if l != "" {
				out.Blocks = append(out.Blocks, Block{Text: l, Line: i + 1, Column: 1})
			}
		}
		return out, nil
	})
}

func TestParse_EmptyGroupCompletesWithNoRecords(t *testing.T) {
	for name, group := range map[string]doc.FileGroup{
		"nil":         nil,
		"empty":       {},
		"empty lists": {doc.Markup: nil, doc.Script: {}},
	} {
		t.Run(name, func(t *testing.T) {
			res := waitResult(t, NewParser().Parse(context.Background(), group))
			require.Empty(t, res.Records)
			require.Empty(t, res.Warnings)
			require.NoError(t, res.Err)
		})
	}
}

func TestParse_PreservesScanOrder(t *testing.T) {
	p := NewParser(
		WithConcurrency(4),
		WithExtractor(doc.Markup, lineExtractor()),
		WithExtractor(doc.Stylesheet, lineExtractor()),
		WithExtractor(doc.Script, lineExtractor()),
	)
	group := doc.FileGroup{
		doc.Script:     {{Path: "slow-z.js", Content: []byte("s1\ns2")}},
		doc.Stylesheet: {{Path: "slow-a.scss", Content: []byte("c1")}, {Path: "b.scss", Content: []byte("c2\nc3")}},
		doc.Markup:     {{Path: "slow-m.html", Content: []byte("m1\nm2")}, {Path: "n.html", Content: []byte("m3")}},
	}

	res := waitResult(t, p.Parse(context.Background(), group))
	require.Empty(t, res.Warnings)
	require.Equal(t, []string{"m1", "m2", "m3", "c1", "c2", "c3", "s1", "s2"}, texts(res.Records))

	for i, r := range res.Records {
		require.Equal(t, i, r.Seq)
	}
	require.Equal(t, doc.Markup, res.Records[0].Type)
	require.Equal(t, "slow-m.html", res.Records[1].File)
	require.Equal(t, 2, res.Records[1].Line)
	require.Equal(t, doc.Script, res.Records[7].Type)
}

func TestParse_EndToEndMarkupThenStylesheet(t *testing.T) {
	group := doc.FileGroup{
		doc.Stylesheet: {{Path: "styles.scss", Content: []byte("/// C\n.c {}\n")}},
		doc.Markup: {{Path: "page.html", Content: []byte(
			"<!--- A --->\n<div></div>\n<!-- docs\nB\n-->\n",
		)}},
	}

	res := waitResult(t, NewParser().Parse(context.Background(), group))
	require.Empty(t, res.Warnings)
	require.Equal(t, []string{"A", "B", "C"}, texts(res.Records))
	require.Equal(t, []int{1, 3, 1}, []int{res.Records[0].Line, res.Records[1].Line, res.Records[2].Line})
}

func TestParse_FileWithoutBlocksContributesNothing(t *testing.T) {
	group := doc.FileGroup{doc.Markup: {{Path: "plain.html", Content: []byte("<p>hello</p>")}}}

	res := waitResult(t, NewParser().Parse(context.Background(), group))
	require.Empty(t, res.Records)
	require.Empty(t, res.Warnings)
}

func TestParse_FailuresAreSkippedWithWarnings(t *testing.T) {
	readErr := errors.New("permission denied")
	failing := ExtractorFunc(func(_ context.Context, path string, src []byte) (*Extraction, error) {
		switch path {
		case "fail.html":
			return nil, fmt.Errorf("cannot tokenize")
		case "panic.html":
			panic("boom")
		case "partial.html":
			return &Extraction{
				Blocks:   []Block{{Text: "kept", Line: 1}},
				Problems: []error{unterminated(path, 4)},
			}, nil
		}
		return lineExtractor().Extract(context.Background(), path, src)
	})

	p := NewParser(WithExtractor(doc.Markup, failing))
	group := doc.FileGroup{doc.Markup: {
		{Path: "unreadable.html", Err: readErr},
		{Path: "fail.html"},
		{Path: "panic.html"},
		{Path: "partial.html"},
		{Path: "ok.html", Content: []byte("fine")},
	}}

	res := waitResult(t, p.Parse(context.Background(), group))
	require.Equal(t, []string{"kept", "fine"}, texts(res.Records))
	require.Len(t, res.Warnings, 4)

	require.True(t, ferrors.HasCategory(res.Warnings[0], ferrors.CategoryScan))
	require.ErrorIs(t, res.Warnings[0], readErr)
	require.True(t, ferrors.HasCategory(res.Warnings[1], ferrors.CategoryParse))
	require.ErrorIs(t, res.Warnings[2], ErrExtractorPanic)
	require.ErrorIs(t, res.Warnings[3], ErrUnterminatedComment)
	for _, w := range res.Warnings {
		require.Equal(t, ferrors.SeverityWarning, ferrors.GetSeverity(w))
	}
}

func TestParse_MissingExtractorAndUnknownType(t *testing.T) {
	p := NewParser(WithExtractor(doc.Script, nil))
	group := doc.FileGroup{
		doc.Script:               {{Path: "a.js", Content: []byte("/** x */")}},
		doc.SourceType("python"): {{Path: "a.py"}},
	}

	res := waitResult(t, p.Parse(context.Background(), group))
	require.Empty(t, res.Records)
	require.Len(t, res.Warnings, 2)
	require.True(t, ferrors.HasCategory(res.Warnings[0], ferrors.CategoryScan))
	require.ErrorIs(t, res.Warnings[1], ErrNoExtractor)
}

func TestJob_CompletesOnceForAllWaiters(t *testing.T) {
	group := doc.FileGroup{doc.Markup: {{Path: "a.html", Content: []byte("<!--- A --->")}}}
	job := NewParser().Parse(context.Background(), group)

	<-job.Done()
	first := waitResult(t, job)
	second := waitResult(t, job)
	require.Equal(t, first, second)
	require.Len(t, first.Records, 1)
}

func TestJob_WaitHonorsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	slow := ExtractorFunc(func(context.Context, string, []byte) (*Extraction, error) {
		<-block
		return &Extraction{}, nil
	})
	job := NewParser(WithExtractor(doc.Markup, slow)).Parse(context.Background(), doc.FileGroup{doc.Markup: {{Path: "a.html"}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := job.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParse_CanceledContextSetsErr(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := waitResult(t, NewParser(WithExtractor(doc.Markup, lineExtractor())).Parse(ctx, doc.FileGroup{
		doc.Markup: {{Path: "a.html", Content: []byte("x")}},
	}))
	require.Error(t, res.Err)
	require.True(t, ferrors.HasCategory(res.Err, ferrors.CategoryCanceled))
}
