package issuer

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/lucabelezal/cardlimit-service/internal/config"
	"github.com/sirupsen/logrus"
)

// Policy is the limit policy published by the card issuer, in minor
// units.
type Policy struct {
	MinAllowedLimit int64
	MaxAllowedLimit int64
}

// Client fetches the limit policy from the issuer's XML endpoint
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new issuer client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.IssuerURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// FetchLimitPolicy retrieves the current limit policy from the issuer
func (c *Client) FetchLimitPolicy() (*Policy, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Issuer XML response: %s", string(body))

	policy, err := parsePolicy(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved issuer limit policy: min=%d max=%d", policy.MinAllowedLimit, policy.MaxAllowedLimit)
	return policy, nil
}

// parsePolicy extracts the limit policy from the issuer XML. Amounts are
// minor units.
func parsePolicy(rawBody []byte) (*Policy, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	root := doc.FindElement("//LimitPolicy")
	if root == nil {
		return nil, fmt.Errorf("no limit policy found in XML")
	}

	min, err := elementInt64(root, "./MinLimit")
	if err != nil {
		return nil, err
	}
	max, err := elementInt64(root, "./MaxLimit")
	if err != nil {
		return nil, err
	}
	if min > max {
		return nil, fmt.Errorf("issuer policy has min %d above max %d", min, max)
	}

	return &Policy{MinAllowedLimit: min, MaxAllowedLimit: max}, nil
}

func elementInt64(parent *etree.Element, path string) (int64, error) {
	el := parent.FindElement(path)
	if el == nil {
		return 0, fmt.Errorf("element %s not found in XML", path)
	}
	v, err := strconv.ParseInt(el.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return v, nil
}
