package authstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// HTTPClient talks to the authoritative store's REST API.
type HTTPClient struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) ListTransactions(ctx context.Context, scope domain.ListScope) ([]domain.CandidateRecord, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions?scope=%s", scope), nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode transaction list: %w", err)
	}

	observedAt := time.Now()
	candidates := make([]domain.CandidateRecord, len(resp.Transactions))
	for i := range resp.Transactions {
		candidates[i] = resp.Transactions[i].toCandidate(observedAt)
	}
	return candidates, nil
}

func (c *HTTPClient) GetTransaction(ctx context.Context, txID string) (*domain.CandidateRecord, error) {
	body, err := c.do(ctx, http.MethodGet, "/transactions/"+txID, nil)
	if err != nil {
		return nil, err
	}

	var dto transactionDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	candidate := dto.toCandidate(time.Now())
	return &candidate, nil
}

func (c *HTTPClient) UpdateStatus(ctx context.Context, txID string, status domain.TransactionStatus, note string) error {
	_, err := c.do(ctx, http.MethodPost, "/transactions/"+txID+"/status", updateStatusRequest{
		Status: string(status),
		Note:   note,
	})
	return err
}

func (c *HTTPClient) UploadProof(ctx context.Context, txID string, blob []byte) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/transactions/"+txID+"/proof", uploadProofRequest{Blob: blob})
	if err != nil {
		return "", err
	}

	var resp uploadProofResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode proof response: %w", err)
	}
	return resp.ProofRef, nil
}

func (c *HTTPClient) Cancel(ctx context.Context, txID, reason string) error {
	_, err := c.do(ctx, http.MethodPost, "/transactions/"+txID+"/cancel", cancelRequest{Reason: reason})
	return err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrTransactionNotFound
	}

	var errResp errorResponse
	if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
		return nil, errors.New(errResp.Error)
	}
	return nil, fmt.Errorf("authoritative store returned status %d", resp.StatusCode)
}
