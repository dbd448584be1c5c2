package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
	"github.com/joseph-ayodele/lease-extractor/internal/llm/huggingface"
)

var alterationKeys = []string{
	constants.FieldConsent,
	constants.FieldCost,
	constants.FieldStructural,
	constants.FieldPlanSubmission,
	constants.FieldLLSubmissionFee,
	constants.FieldSummaryOfAlteration,
}

func TestAlterationStage_NoClauses(t *testing.T) {
	qa := &fakeQA{}
	s := NewAlterationStage(discardLogger(), qa, nil, 1)

	recs := s.Run(context.Background(), []string{})
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.Equal(t, 0, qa.callCount())
}

func TestAlterationStage_Records(t *testing.T) {
	qa := &fakeQA{AnswerFunc: func(_ context.Context, q, _ string) (llm.Answer, error) {
		return llm.Answer{Text: "ans:" + q, Score: 0.7}, nil
	}}
	s := NewAlterationStage(discardLogger(), qa, nil, 1)
	clauses := []string{
		"Tenant shall obtain consent for Alteration. Cost: $5,000.",
		"No alteration in common areas.",
	}

	recs := s.Run(context.Background(), clauses)
	require.Len(t, recs, 2)
	assert.Equal(t, 10, qa.callCount())
	for i, rec := range recs {
		assert.Equal(t, alterationKeys, rec.Keys())
		got, ok := rec.Get(constants.FieldSummaryOfAlteration)
		require.True(t, ok)
		assert.Equal(t, clauses[i], got)
		assert.False(t, rec.Has(constants.FieldError))
		cost, _ := rec.Get(constants.FieldCost)
		assert.Equal(t, "ans:What is the cost mentioned in this clause?", cost)
	}
	// every question was asked against the clause itself
	for _, c := range qa.Calls {
		assert.Contains(t, clauses, c.Context)
	}
}

func TestAlterationStage_ErrorIsolation(t *testing.T) {
	bad := "Alteration clause that breaks the model"
	qa := &fakeQA{AnswerFunc: func(_ context.Context, q, c string) (llm.Answer, error) {
		if c == bad && strings.Contains(q, "cost") {
			return llm.Answer{}, errors.New("model timed out")
		}
		return llm.Answer{Text: "ok"}, nil
	}}
	s := NewAlterationStage(discardLogger(), qa, nil, 1)
	clauses := []string{bad, "alteration two"}

	recs := s.Run(context.Background(), clauses)
	require.Len(t, recs, 2)

	failed := recs[0]
	for _, k := range alterationKeys {
		assert.True(t, failed.Has(k), k)
	}
	msg, ok := failed.Get(constants.FieldError)
	require.True(t, ok)
	assert.Equal(t, "model timed out", msg)
	consent, ok := failed.Get(constants.FieldConsent)
	assert.True(t, ok)
	assert.Equal(t, "ok", consent)
	_, ok = failed.Get(constants.FieldCost)
	assert.False(t, ok)
	summary, _ := failed.Get(constants.FieldSummaryOfAlteration)
	assert.Equal(t, bad, summary)

	ok2 := recs[1]
	assert.False(t, ok2.Has(constants.FieldError))
	for _, k := range alterationKeys {
		_, set := ok2.Get(k)
		assert.True(t, set, k)
	}
	// clause 0 stopped after the failing second question
	assert.Equal(t, 2+5, qa.callCount())
}

func TestAlterationStage_EmptyErrorMessage(t *testing.T) {
	qa := &fakeQA{AnswerFunc: func(context.Context, string, string) (llm.Answer, error) {
		return llm.Answer{}, errors.New("")
	}}
	recs := NewAlterationStage(discardLogger(), qa, nil, 1).Run(context.Background(), []string{"alteration"})
	msg, ok := recs[0].Get(constants.FieldError)
	require.True(t, ok)
	assert.NotEmpty(t, msg)
}

func TestAlterationStage_MalformedModelReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"warnings":["unexpected payload"]}`))
	}))
	t.Cleanup(srv.Close)
	qa := huggingface.NewClient(huggingface.Config{Token: "hf_x", BaseURL: srv.URL}, discardLogger())

	recs := NewAlterationStage(discardLogger(), qa, nil, 1).Run(context.Background(), []string{"alteration clause"})
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Has(constants.FieldError))
	_, ok := recs[0].Get(constants.FieldConsent)
	assert.False(t, ok)
	summary, _ := recs[0].Get(constants.FieldSummaryOfAlteration)
	assert.Equal(t, "alteration clause", summary)
}

func TestAlterationStage_ConcurrentKeepsOrder(t *testing.T) {
	qa := &fakeQA{AnswerFunc: func(_ context.Context, _, c string) (llm.Answer, error) {
		// later clauses finish first
		var n int
		_, _ = fmt.Sscanf(c, "alteration %d", &n)
		time.Sleep(time.Duration(10-n) * time.Millisecond)
		return llm.Answer{Text: c}, nil
	}}
	s := NewAlterationStage(discardLogger(), qa, nil, 4)
	var clauses []string
	for i := 0; i < 10; i++ {
		clauses = append(clauses, fmt.Sprintf("alteration %d", i))
	}

	recs := s.Run(context.Background(), clauses)
	require.Len(t, recs, len(clauses))
	for i, rec := range recs {
		got, _ := rec.Get(constants.FieldConsent)
		assert.Equal(t, clauses[i], got)
	}
}

func TestAlterationStage_CustomQuestions(t *testing.T) {
	qa := &fakeQA{}
	qs := constants.QuestionSet{{Field: "Cost", Question: "How much?"}}
	recs := NewAlterationStage(discardLogger(), qa, qs, 1).Run(context.Background(), []string{"alteration"})
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Cost", constants.FieldSummaryOfAlteration}, recs[0].Keys())
	assert.Equal(t, 1, qa.callCount())
}

func TestMetadataStage_FieldIsolation(t *testing.T) {
	qa := &fakeQA{AnswerFunc: func(_ context.Context, q, _ string) (llm.Answer, error) {
		if strings.Contains(q, "region") {
			return llm.Answer{}, errors.New("503 model loading")
		}
		return llm.Answer{Text: "value"}, nil
	}}
	s := NewMetadataStage(discardLogger(), qa, nil)
	text := "full lease text"

	rec := s.Run(context.Background(), text)
	assert.Equal(t, constants.DefaultMetadataQuestions().Fields(), rec.Keys())
	assert.Equal(t, 8, qa.callCount())

	populated := 0
	for _, k := range rec.Keys() {
		if _, ok := rec.Get(k); ok {
			populated++
		}
	}
	assert.Equal(t, 7, populated)
	_, ok := rec.Get(constants.FieldRegion)
	assert.False(t, ok)
	assert.True(t, rec.Has(constants.FieldRegion))
	assert.False(t, rec.Has(constants.FieldError))
	for _, c := range qa.Calls {
		assert.Equal(t, text, c.Context)
	}
}

func TestSummaryStage_Prefix(t *testing.T) {
	sum := &fakeSummarizer{}
	s := NewSummaryStage(discardLogger(), sum, 3000, llm.DefaultSummaryOptions())
	text := strings.Repeat("abcde", 1000)

	out, err := s.Run(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, "summary", out)
	require.Len(t, sum.Inputs, 1)
	assert.Len(t, sum.Inputs[0], 3000)
	assert.Equal(t, text[:3000], sum.Inputs[0])
	assert.Equal(t, llm.SummaryOptions{MinLength: 30, MaxLength: 130, DoSample: false}, sum.Opts[0])

	sum.Inputs = nil
	_, err = s.Run(context.Background(), "short lease")
	require.NoError(t, err)
	assert.Equal(t, "short lease", sum.Inputs[0])
}

func TestSummaryStage_Errors(t *testing.T) {
	sum := &fakeSummarizer{SummarizeFunc: func(context.Context, string, llm.SummaryOptions) (string, error) {
		return "", errors.New("unavailable")
	}}
	s := NewSummaryStage(discardLogger(), sum, 0, llm.SummaryOptions{})

	_, err := s.Run(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSummarization))
	assert.True(t, errors.Is(err, common.ErrEmptyText))
	assert.Empty(t, sum.Inputs)

	_, err = s.Run(context.Background(), "lease")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSummarization))
	assert.Equal(t, common.CodeSummarization, common.CodeOf(err))
	assert.Contains(t, err.Error(), "unavailable")
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "", Prefix("abc", 0))
	assert.Equal(t, "ab", Prefix("abc", 2))
	assert.Equal(t, "abc", Prefix("abc", 5))
	assert.Equal(t, "€€", Prefix("€€€", 2))
	assert.Equal(t, "", Prefix("", 3000))
}
