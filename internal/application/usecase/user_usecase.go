package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/domain"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/domain/repository"
)

// UserUseCase registro y consulta de usuarios sobre el almacén local y el espejo remoto.
type UserUseCase struct {
	repo repository.UserRepository
	sync syncer
	cfg  SyncConfig
}

// NewUserUseCase construye el caso de uso. remote puede ser nil (modo solo local).
func NewUserUseCase(repo repository.UserRepository, remote ports.RemoteMirror, cfg SyncConfig, log zerolog.Logger) *UserUseCase {
	cfg = cfg.withDefaults()
	return &UserUseCase{
		repo: repo,
		sync: newSyncer(remote, cfg, log.With().Str("usecase", "users").Logger()),
		cfg:  cfg,
	}
}

// Register crea un usuario. El email debe ser único en el almacén local; la contraseña
// se guarda tal cual y nunca se envía al espejo.
func (uc *UserUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserWriteResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     in.Email,
		Password:  in.Password,
		Role:      role,
		CreatedAt: uc.cfg.Now(),
	}
	if err := uc.repo.Put(user); err != nil {
		return nil, err
	}
	status := uc.sync.write(ctx, "Usuario", func(ctx context.Context) error {
		return uc.sync.remote.AddUser(ctx, user)
	})
	return &dto.UserWriteResult{User: *toUserResponse(user), Sync: status}, nil
}

// List une usuarios remotos y locales (sin duplicados por email), más recientes primero.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	local, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	remote := fetchRemote(ctx, uc.sync, "users", func(ctx context.Context) ([]*entity.User, error) {
		return uc.sync.remote.GetUsers(ctx)
	})
	merged := mergeBy(remote, local, func(u *entity.User) string { return u.Email })
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	out := make([]dto.UserResponse, 0, len(merged))
	for _, u := range merged {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetByEmail busca en el almacén local (incluye password, para login).
// Devuelve (nil, nil) si no existe.
func (uc *UserUseCase) GetByEmail(email string) (*entity.User, error) {
	return uc.repo.GetByEmail(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
