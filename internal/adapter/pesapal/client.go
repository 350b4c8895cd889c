package pesapal

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNoToken indicates the gateway refused to issue a request token.
var ErrNoToken = errors.New("pesapal token unavailable")

// PaymentRequest carries buyer and order data for checkout page creation.
type PaymentRequest struct {
	OrderID   int64
	Amount    float64
	Email     string
	Phone     string
	FirstName string
	LastName  string
}

// PaymentPage is a hosted checkout page the buyer gets redirected to.
type PaymentPage struct {
	IframeURL string
	Reference string
}

// PaymentStatus is the gateway's view of a transaction.
type PaymentStatus struct {
	Status    string
	Reference string
	Amount    float64
	Currency  string
}

// Client exposes operations against the PesaPal gateway.
type Client interface {
	CreatePaymentPage(ctx context.Context, req PaymentRequest) (*PaymentPage, error)
	VerifyPayment(ctx context.Context, reference string) (*PaymentStatus, error)
}

// HTTPClient implements Client via the PesaPal HTTP API.
type HTTPClient struct {
	baseURL        *url.URL
	consumerKey    string
	consumerSecret string
	callbackURL    string
	httpClient     *http.Client
	logger         *slog.Logger
	now            func() time.Time
}

type tokenResponse struct {
	Token string `json:"token"`
}

type statusResponse struct {
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// payload is the signed XML document embedded in the checkout page URL.
type payload struct {
	XMLName           xml.Name `xml:"PesapalPayload"`
	TransactionType   string   `xml:"TransactionType"`
	Reference         string   `xml:"Reference"`
	Amount            string   `xml:"Amount"`
	Currency          string   `xml:"Currency"`
	Description       string   `xml:"Description"`
	CustomerEmail     string   `xml:"CustomerEmail"`
	CustomerPhone     string   `xml:"CustomerPhone"`
	CustomerFirstName string   `xml:"CustomerFirstName"`
	CustomerLastName  string   `xml:"CustomerLastName"`
	CallbackURL       string   `xml:"CallbackUrl"`
}

// NewHTTPClient creates an HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, consumerKey, consumerSecret, callbackURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pesapal url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("pesapal url must be absolute")
	}
	return &HTTPClient{
		baseURL:        parsed,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		callbackURL:    callbackURL,
		logger:         logger,
		now:            time.Now,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreatePaymentPage authenticates against the gateway and builds the hosted
// checkout page URL. The merchant reference encodes the order id so the
// callback can route the result back to the order.
func (c *HTTPClient) CreatePaymentPage(ctx context.Context, req PaymentRequest) (*PaymentPage, error) {
	if _, err := c.requestToken(ctx); err != nil {
		return nil, err
	}

	reference := fmt.Sprintf("ORD_%d_%d", req.OrderID, c.now().UTC().Unix())

	doc := payload{
		TransactionType:   "PAYMENT",
		Reference:         reference,
		Amount:            strconv.FormatFloat(req.Amount, 'f', 2, 64),
		Currency:          "KES",
		Description:       fmt.Sprintf("Flower Delivery Order %s", reference),
		CustomerEmail:     req.Email,
		CustomerPhone:     req.Phone,
		CustomerFirstName: req.FirstName,
		CustomerLastName:  req.LastName,
		CallbackURL:       c.callbackURL,
	}
	raw, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}

	signature := c.sign(map[string]string{
		"pesapal_request_data":  string(raw),
		"pesapal_response_type": "JSON",
	})

	endpoint := *c.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + "/PostPesapalDirectOrder"
	query := url.Values{}
	query.Set("pesapal_request_data", base64.StdEncoding.EncodeToString(raw))
	query.Set("pesapal_response_type", "JSON")
	query.Set("pesapal_merchant_reference", reference)
	query.Set("pesapal_signature", signature)
	endpoint.RawQuery = query.Encode()

	return &PaymentPage{IframeURL: endpoint.String(), Reference: reference}, nil
}

// VerifyPayment queries the gateway for the current transaction state.
func (c *HTTPClient) VerifyPayment(ctx context.Context, reference string) (*PaymentStatus, error) {
	token, err := c.requestToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("reference", reference)
	params.Set("pesapal_merchant_reference", reference)
	params.Set("pesapal_transaction_tracking_id", reference)
	params.Set("token", token)
	params.Set("timestamp", strconv.FormatInt(c.now().UTC().Unix(), 10))

	body, err := c.get(ctx, "/api/query-payment-details", params)
	if err != nil {
		return nil, err
	}

	var data statusResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	if data.Currency == "" {
		data.Currency = "KES"
	}
	return &PaymentStatus{
		Status:    data.Status,
		Reference: data.Reference,
		Amount:    data.Amount,
		Currency:  data.Currency,
	}, nil
}

func (c *HTTPClient) requestToken(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("consumer_key", c.consumerKey)
	params.Set("consumer_secret", c.consumerSecret)
	params.Set("timestamp", strconv.FormatInt(c.now().UTC().Unix(), 10))

	signed := map[string]string{}
	for k := range params {
		signed[k] = params.Get(k)
	}
	params.Set("signature", c.sign(signed))

	body, err := c.get(ctx, "/api/get-token", params)
	if err != nil {
		return "", err
	}

	var data tokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", ErrNoToken
	}
	return data.Token, nil
}

func (c *HTTPClient) get(ctx context.Context, apiPath string, params url.Values) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + apiPath
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("pesapal request failed",
			slog.String("path", apiPath),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return nil, fmt.Errorf("pesapal error: %s", resp.Status)
	}
	return body, nil
}

// sign produces the base64 HMAC-SHA1 over the sorted query string.
func (c *HTTPClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	mac := hmac.New(sha1.New, []byte(c.consumerSecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
