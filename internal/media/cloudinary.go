package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"storefront/m/internal/config"
)

// UploadResult is the subset of the Cloudinary upload response we keep.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Client uploads images to Cloudinary using signed upload requests.
type Client struct {
	http      *http.Client
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

// New builds a Client from the Cloudinary section of the configuration.
func New(cfg config.Cloudinary) *Client {
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   cfg.BaseURL,
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
	}
}

// Upload forwards the image bytes to the Cloudinary image upload endpoint
// and returns the hosted URL. The request is signed with the API secret.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (*UploadResult, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"api_key":   c.apiKey,
		"folder":    c.folder,
		"timestamp": timestamp,
		"signature": c.sign(timestamp),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary upload failed: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("cloudinary upload failed: status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// sign computes the Cloudinary request signature: SHA-1 over the
// alphabetically ordered signed parameters followed by the API secret.
func (c *Client) sign(timestamp string) string {
	toSign := fmt.Sprintf("folder=%s&timestamp=%s%s", c.folder, timestamp, c.apiSecret)
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}
