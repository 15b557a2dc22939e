package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultDetectEndpoint 检测服务地址
const DefaultDetectEndpoint = "http://localhost:8000/detect"

// DetectionResult 检测服务的响应
type DetectionResult struct {
	Detections  []DetectedObject `json:"detections"`
	ClassCounts map[string]int   `json:"class_counts"`
	Confidences []float64        `json:"confidences"`
	Image       string           `json:"image"` // base64 PNG，不保存到历史
}

// Detector 对一张图片执行目标检测
type Detector interface {
	Detect(ctx context.Context, fileName string, data []byte) (*DetectionResult, error)
}

// HTTPDetector posts the image as multipart form field "file" to Endpoint.
// No retries: a failed request is reported to the caller.
type HTTPDetector struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPDetector creates a detector for endpoint.
func NewHTTPDetector(endpoint string) *HTTPDetector {
	return &HTTPDetector{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Detect implements Detector.
func (d *HTTPDetector) Detect(ctx context.Context, fileName string, data []byte) (*DetectionResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("detect request failed: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	var result DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode detect response: %w", err)
	}
	return &result, nil
}

// NewDetectionRecord 把检测结果转换为历史记录（只保留元数据）
func NewDetectionRecord(fileName string, res *DetectionResult, now time.Time) DetectionRecord {
	counts := make(map[string]int, len(res.ClassCounts))
	for k, v := range res.ClassCounts {
		counts[k] = v
	}
	return DetectionRecord{
		ID:          fmt.Sprintf("detection-%d", now.UnixMilli()),
		FileName:    fileName,
		Date:        now,
		Detections:  append([]DetectedObject(nil), res.Detections...),
		ClassCounts: counts,
	}
}
