package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jnovak/budget-categorizer/internal/logging"
	"jnovak/budget-categorizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns scripted responses in order.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeClient) Classify(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", nil
}

func response(tier1 string, confidence string) string {
	return "Tier1: " + tier1 + "\nTier2: Sub\nTier3: Leaf\nConfidence: " + confidence
}

func newTestClassifier(client Client, threshold int) *Classifier {
	return NewClassifier(client, NewLimiter(0, 0), ClassifierOptions{
		ConfidenceThreshold: threshold,
		MaxRetries:          2,
		RetryBaseDelay:      time.Millisecond,
	}, &logging.MockLogger{})
}

func TestClassifyAcceptsAtThreshold(t *testing.T) {
	client := &fakeClient{responses: []string{response("Living Expenses", "75")}}
	c := newTestClassifier(client, 75)

	category, confidence, accepted, err := c.Classify(context.Background(), &models.Transaction{Description: "ALBERT"}, nil)
	require.NoError(t, err)
	assert.True(t, accepted, "a score exactly at the threshold is accepted")
	assert.Equal(t, 75, confidence)
	assert.Equal(t, "Living Expenses", category.Tier1)
}

func TestClassifyRejectsBelowThreshold(t *testing.T) {
	client := &fakeClient{responses: []string{response("Living Expenses", "74")}}
	c := newTestClassifier(client, 75)

	category, confidence, accepted, err := c.Classify(context.Background(), &models.Transaction{}, nil)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, 74, confidence)
	assert.Equal(t, "Living Expenses", category.Tier1, "the rejected guess is still reported for auditing")
}

func TestClassifyRetriesRateLimit(t *testing.T) {
	client := &fakeClient{
		errs:      []error{ErrRateLimited, nil},
		responses: []string{"", response("Housing", "90")},
	}
	c := newTestClassifier(client, 75)

	category, _, accepted, err := c.Classify(context.Background(), &models.Transaction{}, nil)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, "Housing", category.Tier1)
	assert.Equal(t, 2, client.calls)
}

func TestClassifyPropagatesQuotaExhaustion(t *testing.T) {
	client := &fakeClient{}
	limiter := NewLimiter(0, 1)
	c := NewClassifier(client, limiter, ClassifierOptions{
		ConfidenceThreshold: 75,
		RetryBaseDelay:      time.Millisecond,
	}, &logging.MockLogger{})

	_, _, accepted, err := c.Classify(context.Background(), &models.Transaction{}, nil)
	require.Error(t, err, "empty response is unparseable")
	_ = accepted

	_, _, _, err = c.Classify(context.Background(), &models.Transaction{}, nil)
	assert.ErrorIs(t, err, ErrDailyQuotaExhausted)
	assert.Equal(t, 1, client.calls, "no request once the quota is spent")
}

func TestClassifyUnparseableResponse(t *testing.T) {
	client := &fakeClient{responses: []string{"I have no idea."}}
	c := newTestClassifier(client, 75)

	_, _, _, err := c.Classify(context.Background(), &models.Transaction{}, nil)
	assert.Error(t, err)
}

func TestClassifyIncludesTaxonomyInPrompt(t *testing.T) {
	client := &fakeClient{responses: []string{response("Living Expenses", "80")}}
	c := newTestClassifier(client, 75)

	taxonomy := models.Taxonomy{{Tier1: "Living Expenses", Tier2: []models.Tier2Group{{Tier2: "Groceries"}}}}
	_, _, _, err := c.Classify(context.Background(), &models.Transaction{Description: "LIDL"}, taxonomy)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "LIDL")
	assert.Contains(t, client.prompts[0], "Groceries")
}

func TestClassifyWritesResultLog(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "ai_results.yaml")
	client := &fakeClient{responses: []string{response("Living Expenses", "80"), response("Housing", "40")}}
	c := NewClassifier(client, NewLimiter(0, 0), ClassifierOptions{
		ConfidenceThreshold: 75,
		RetryBaseDelay:      time.Millisecond,
		ResultLogFile:       logFile,
	}, &logging.MockLogger{})

	_, _, _, err := c.Classify(context.Background(), &models.Transaction{Description: "first"}, nil)
	require.NoError(t, err)
	_, _, _, err = c.Classify(context.Background(), &models.Transaction{Description: "second"}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "first")
	assert.Contains(t, content, "second")
	assert.Contains(t, content, "accepted: true")
	assert.Contains(t, content, "accepted: false")
}
