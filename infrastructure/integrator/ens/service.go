package ens

import (
	"context"
	"sort"
	"strings"

	"github.com/vfg2006/fund-kpi-api/infrastructure/integrator/ens/ensclient"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
)

type EnsIntegrator interface {
	ListAddresses(ctx context.Context) ([]domain.EnsData, error)
	// ResolveNames retorna o nome ENS de cada endereço conhecido (chave em minúsculas)
	ResolveNames(ctx context.Context) (map[string]string, error)
}

type EnsService struct {
	Client ensclient.Client
}

func New(client ensclient.Client) EnsIntegrator {
	return &EnsService{
		Client: client,
	}
}

func (s *EnsService) ListAddresses(ctx context.Context) ([]domain.EnsData, error) {
	addresses, err := s.Client.GetAddresses(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(addresses, func(i, j int) bool {
		return addresses[i].Ens < addresses[j].Ens
	})

	return addresses, nil
}

func (s *EnsService) ResolveNames(ctx context.Context) (map[string]string, error) {
	addresses, err := s.Client.GetAddresses(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(addresses))
	for _, a := range addresses {
		if a.Address == "" || a.Ens == "" {
			continue
		}
		names[strings.ToLower(a.Address)] = a.Ens
	}

	return names, nil
}
