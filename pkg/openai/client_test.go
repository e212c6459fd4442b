package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weekbrief/weekbrief/pkg/insight"
	"github.com/weekbrief/weekbrief/pkg/stats"
)

func completionServer(t *testing.T, content string, capture *chatCompletionRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if capture != nil {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, capture))
		}
		resp := chatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: content}})
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestComplete_ReturnsFirstChoice(t *testing.T) {
	// given
	var request chatCompletionRequest
	server := completionServer(t, "standup", &request)
	defer server.Close()
	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 5*time.Second)

	// when
	text, err := client.Complete(context.Background(), "Classify this event", 10)

	// then
	require.NoError(t, err)
	assert.Equal(t, "standup", text)
	assert.Equal(t, "gpt-3.5-turbo", request.Model)
	assert.Equal(t, 10, request.MaxTokens)
	require.Len(t, request.Messages, 1)
	assert.Equal(t, "user", request.Messages[0].Role)
	assert.Equal(t, "Classify this event", request.Messages[0].Content)
}

func TestComplete_EmptyChoicesFails(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatCompletionResponse{})
	}))
	defer server.Close()
	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 5*time.Second)

	// when
	_, err := client.Complete(context.Background(), "prompt", 10)

	// then
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestComplete_NonOKStatusFails(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()
	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 5*time.Second)

	// when
	_, err := client.Complete(context.Background(), "prompt", 10)

	// then
	assert.Error(t, err)
}

func TestClassifyText_PromptListsCategoriesAndTrimsLabel(t *testing.T) {
	// given
	var request chatCompletionRequest
	server := completionServer(t, " one_on_one \n", &request)
	defer server.Close()
	classifier := NewClassifier(NewClient("test-key", server.URL, "gpt-3.5-turbo", 5*time.Second))

	// when
	label, err := classifier.ClassifyText(context.Background(), "Weekly 1:1", "Catch up with manager")

	// then
	require.NoError(t, err)
	assert.Equal(t, "one_on_one", label)
	prompt := request.Messages[0].Content
	assert.Contains(t, prompt, "standup")
	assert.Contains(t, prompt, "one_on_one")
	assert.Contains(t, prompt, "Title: Weekly 1:1")
	assert.Contains(t, prompt, "Description: Catch up with manager")
}

func TestSummarize_PromptCarriesWeekData(t *testing.T) {
	// given
	var request chatCompletionRequest
	server := completionServer(t, "This week you had a busy schedule.", &request)
	defer server.Close()
	summarizer := NewSummarizer(NewClient("test-key", server.URL, "gpt-3.5-turbo", 5*time.Second))
	summary := stats.WeekSummary{TotalEvents: 12, TotalTime: 9 * time.Hour}
	insights := []insight.Insight{{Text: "📅 Heavy meeting week", Kind: insight.KindVolume}}

	// when
	text, err := summarizer.Summarize(context.Background(), summary, insights)

	// then
	require.NoError(t, err)
	assert.Equal(t, "This week you had a busy schedule.", text)
	prompt := request.Messages[0].Content
	assert.Contains(t, prompt, "Total meetings: 12")
	assert.Contains(t, prompt, "📅 Heavy meeting week")
	assert.Contains(t, prompt, "This week you had")
	assert.Equal(t, 150, request.MaxTokens)
}
