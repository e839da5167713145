package ensclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetAddresses(ctx context.Context) ([]domain.EnsData, error)
}

type EnsClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &EnsClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}

// GetAddresses baixa o diretório completo de nomes ENS conhecidos
func (c *EnsClient) GetAddresses(ctx context.Context) ([]domain.EnsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.ENS.URL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição ENS")
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição ENS")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Error on Request: %s status: %s", c.config.ENS.URL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var addresses []domain.EnsData
	if err := json.Unmarshal(body, &addresses); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON do ENS")
		return nil, err
	}

	return addresses, nil
}
