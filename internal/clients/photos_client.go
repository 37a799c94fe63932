package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// PhotosClient прокси к NASA Mars Rover Photos API
type PhotosClient interface {
	FetchPhotos(ctx context.Context, query PhotosQuery) ([]map[string]interface{}, error)
}

type PhotosQuery struct {
	Rover  string
	Sol    int
	Camera string
	Page   int
}

type PhotosConfig struct {
	APIKey  string
	BaseURL string
}

type photosClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewPhotosClient(config PhotosConfig) PhotosClient {
	return &photosClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		client: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
	}
}

func (c *photosClient) FetchPhotos(ctx context.Context, query PhotosQuery) ([]map[string]interface{}, error) {
	params := url.Values{}
	params.Add("sol", strconv.Itoa(query.Sol))
	if query.Camera != "" {
		params.Add("camera", query.Camera)
	}
	if query.Page > 0 {
		params.Add("page", strconv.Itoa(query.Page))
	}
	if c.apiKey != "" {
		params.Add("api_key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/rovers/%s/photos?%s", c.baseURL, url.PathEscape(query.Rover), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mars-Dashboard/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("photos API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Photos []map[string]interface{} `json:"photos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	if result.Photos == nil {
		result.Photos = []map[string]interface{}{}
	}
	return result.Photos, nil
}
