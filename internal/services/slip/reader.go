// Package slip reads photographed delivery slips through an
// OpenAI-compatible LLM gateway and reconciles the neighborhood it finds
// with the rider's registered fees.
package slip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"motoboy-backend/internal/cache"
)

const (
	DefaultGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel      = "google/gemini-2.5-flash"
)

type Config struct {
	GatewayURL string
	Model      string
	APIKey     string
	// CacheTTL keeps successful readings of identical requests; zero disables it
	CacheTTL time.Duration
}

// Request is one slip to read
type Request struct {
	ImageBase64   string
	Neighborhoods []NeighborhoodFee
}

// Result is the reconciled reading. Neighborhood holds the registered name
// when it matched one, otherwise the raw string the model returned.
type Result struct {
	Address      *string `json:"endereco"`
	Neighborhood *string `json:"bairro"`
	Reference    *string `json:"referencia"`
	Note         *string `json:"observacao"`
	Confidence   *string `json:"confianca"`
	Fee          float64 `json:"taxa"`
	Matched      bool    `json:"-"`
}

type Reader struct {
	cfg    Config
	client *http.Client
	cache  *cache.Cache[Result]
}

func NewReader(cfg Config) *Reader {
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = DefaultGatewayURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	r := &Reader{cfg: cfg, client: &http.Client{}}
	if cfg.CacheTTL > 0 {
		r.cache = cache.New[Result]("slips", 256, cfg.CacheTTL)
	}
	return r
}

// WithHTTPClient replaces the gateway client
func (r *Reader) WithHTTPClient(c *http.Client) *Reader {
	r.client = c
	return r
}

func (r *Reader) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Read sends the slip to the gateway. It never retries and never writes a
// delivery; the caller decides what to do with the result.
func (r *Reader) Read(ctx context.Context, req Request) (*Result, error) {
	if r.cfg.APIKey == "" {
		return nil, errConfig()
	}
	if strings.TrimSpace(req.ImageBase64) == "" {
		return nil, errMissingImage()
	}

	neighborhoods := NeighborhoodList(req.Neighborhoods)
	key := cache.Key(req.ImageBase64, neighborhoods)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			log.Printf("   ✓ Slip reading served from cache")
			return &cached, nil
		}
	}

	log.Printf("🧾 Reading delivery slip (%d registered neighborhoods)", len(req.Neighborhoods))

	content, err := r.complete(ctx, neighborhoods, req.ImageBase64)
	if err != nil {
		return nil, err
	}

	raw, err := FirstObject(content)
	if err != nil {
		log.Printf("   ❌ No JSON object in gateway response")
		return nil, errUnreadable(content, err)
	}
	extraction, err := decodeExtraction(raw)
	if err != nil {
		return nil, errUnreadable(content, err)
	}

	result := Reconcile(extraction, req.Neighborhoods)
	if r.cache != nil {
		r.cache.Set(key, *result)
	}
	log.Printf("   ✅ Slip read (matched=%v, fee=%.2f)", result.Matched, result.Fee)
	return result, nil
}

func (r *Reader) complete(ctx context.Context, neighborhoods, image string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: r.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(neighborhoods)},
			{Role: "user", Content: []chatContent{
				{Type: "text", Text: userPrompt},
				{Type: "image_url", ImageURL: &chatImageURL{URL: imageURL(image)}},
			}},
		},
	})
	if err != nil {
		return "", errUpstream(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", errUpstream(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", errUpstream(fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", errRateLimited()
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", errQuotaExceeded()
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		text, _ := io.ReadAll(resp.Body)
		log.Printf("   ❌ AI gateway error (%d): %s", resp.StatusCode, string(text))
		return "", errUpstream(fmt.Errorf("gateway returned status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errUpstream(fmt.Errorf("decode gateway response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", errUnreadable("", ErrUnreadableSlip)
	}
	return parsed.Choices[0].Message.Content, nil
}

// Reconcile matches the extracted neighborhood against the registered ones,
// ignoring case. On a match the registered name and fee are used.
func Reconcile(e *Extraction, registered []NeighborhoodFee) *Result {
	result := &Result{
		Address:      e.Endereco,
		Neighborhood: e.Bairro,
		Reference:    e.Referencia,
		Note:         e.Observacao,
		Confidence:   e.Confianca,
	}
	if e.Bairro == nil {
		return result
	}
	for _, n := range registered {
		if strings.EqualFold(n.Name, *e.Bairro) {
			name := n.Name
			result.Neighborhood = &name
			result.Fee = n.Fee
			result.Matched = true
			break
		}
	}
	return result
}
