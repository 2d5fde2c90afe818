package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/domain"
	"github.com/jhoicas/oriflame-store/internal/domain/repository"
)

// MaintenanceUseCase operaciones de administración del almacén y del espejo remoto.
type MaintenanceUseCase struct {
	store  repository.StoreMaintenance
	remote ports.RemoteMirror
	config ports.RemoteConfigurer
	log    zerolog.Logger
}

// NewMaintenanceUseCase construye el caso de uso. remote y config pueden ser nil.
func NewMaintenanceUseCase(store repository.StoreMaintenance, remote ports.RemoteMirror, config ports.RemoteConfigurer, log zerolog.Logger) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		store:  store,
		remote: remote,
		config: config,
		log:    log.With().Str("usecase", "maintenance").Logger(),
	}
}

// Stats conteos del almacén local.
func (uc *MaintenanceUseCase) Stats() repository.StoreStats {
	return uc.store.Stats()
}

// Reset borra todos los datos locales y vuelve a sembrar el admin y los productos de ejemplo.
// El espejo remoto no se modifica.
func (uc *MaintenanceUseCase) Reset(ctx context.Context) (repository.StoreStats, error) {
	if err := uc.store.Clear(ctx); err != nil {
		return repository.StoreStats{}, fmt.Errorf("vaciar almacén: %w", err)
	}
	if err := uc.store.Initialize(ctx); err != nil {
		return repository.StoreStats{}, fmt.Errorf("reinicializar almacén: %w", err)
	}
	st := uc.store.Stats()
	uc.log.Warn().Int("users", st.Users).Int("products", st.Products).Msg("almacén local restablecido")
	return st, nil
}

// Flush reintenta el volcado de las tablas pendientes.
func (uc *MaintenanceUseCase) Flush(ctx context.Context) error {
	return uc.store.Flush(ctx)
}

// RemoteStatus indica si hay espejo configurado y su endpoint.
func (uc *MaintenanceUseCase) RemoteStatus() dto.RemoteStatusResponse {
	var st dto.RemoteStatusResponse
	if uc.remote != nil {
		st.Configured = uc.remote.Configured()
	}
	if uc.config != nil {
		st.Endpoint = uc.config.Endpoint()
	}
	return st
}

// SetRemoteEndpoint cambia la URL del script en caliente. Vacía deshabilita el espejo.
func (uc *MaintenanceUseCase) SetRemoteEndpoint(in dto.SetRemoteEndpointRequest) (dto.RemoteStatusResponse, error) {
	in.URL = strings.TrimSpace(in.URL)
	if err := validateInput(in); err != nil {
		return dto.RemoteStatusResponse{}, err
	}
	if uc.config == nil {
		return dto.RemoteStatusResponse{}, fmt.Errorf("%w: el espejo remoto no admite reconfiguración", domain.ErrInvalidInput)
	}
	uc.config.SetEndpoint(in.URL)
	return uc.RemoteStatus(), nil
}
