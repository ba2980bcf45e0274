// Package analysis calls the remote vision service that turns meal photos
// into recognized food items.
package analysis

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/icalorie/icalorie-server/internal/model"
)

// Client talks to the analysis endpoints over HTTP.
type Client struct {
	http *resty.Client
}

// New builds a Client against baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

type analyzeRequest struct {
	Image string `json:"image"`
}

type analyzeResponse struct {
	Items []model.FoodItem `json:"items"`
}

type refineRequest struct {
	Image        string           `json:"image"`
	CurrentItems []model.FoodItem `json:"currentItems"`
	UserPrompt   string           `json:"userPrompt"`
}

type refineResponse struct {
	Items   []model.FoodItem `json:"items"`
	Message string           `json:"message"`
}

// Analyze submits a base64-encoded photo and returns the recognized items.
func (c *Client) Analyze(ctx context.Context, imageB64 string) ([]model.FoodItem, error) {
	var out analyzeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(analyzeRequest{Image: imageB64}).
		SetResult(&out).
		Post("/api/analyze")
	if err != nil {
		return nil, errors.Wrap(err, "analysis request failed")
	}
	if resp.IsError() {
		return nil, errors.Wrapf(model.ErrRemoteAnalysis, "analyze returned %s", resp.Status())
	}
	return out.Items, nil
}

// Refine resubmits the photo with the current item list and a user
// correction, returning the adjusted items and the service's reply text.
func (c *Client) Refine(ctx context.Context, imageB64 string, items []model.FoodItem, prompt string) ([]model.FoodItem, string, error) {
	var out refineResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(refineRequest{Image: imageB64, CurrentItems: items, UserPrompt: prompt}).
		SetResult(&out).
		Post("/api/refine")
	if err != nil {
		return nil, "", errors.Wrap(err, "refine request failed")
	}
	if resp.IsError() {
		return nil, "", errors.Wrapf(model.ErrRemoteAnalysis, "refine returned %s", resp.Status())
	}
	return out.Items, out.Message, nil
}
