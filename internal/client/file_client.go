package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/config"
)

// FileClient talks to the hosted file service that stores report photos.
// Storage itself is the backend's concern; this only performs the upload
// and hands back the public URL.
type FileClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewFileClient(cfg *config.Config) *FileClient {
	return &FileClient{
		baseURL: cfg.FileService.BaseURL,
		token:   cfg.FileService.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (c *FileClient) UploadReportPhoto(ctx context.Context, filename string, content []byte) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("file service URL is not configured")
	}
	if filename == "" {
		filename = "photo.jpg"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("file service returned %d: %s", resp.StatusCode, payload)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode file service response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("file service response missing url")
	}

	return parsed.URL, nil
}
