package domain

// EnsData associa um nome ENS ao endereço
type EnsData struct {
	Ens     string `json:"ens"`
	Address string `json:"address"`
}
