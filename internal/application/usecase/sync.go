package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/domain"
)

// DefaultRemoteTimeout tope de cada llamada al espejo remoto.
const DefaultRemoteTimeout = 10 * time.Second

// SyncConfig opciones compartidas por los casos de uso que escriben en los dos destinos.
type SyncConfig struct {
	RemoteTimeout time.Duration    // 0 = DefaultRemoteTimeout
	Now           func() time.Time // nil = time.Now
}

func (c SyncConfig) withDefaults() SyncConfig {
	if c.RemoteTimeout <= 0 {
		c.RemoteTimeout = DefaultRemoteTimeout
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// syncer envuelve el espejo remoto: el almacén local ya tiene el registro cuando se
// llama a write, así que ningún fallo remoto se propaga como error.
type syncer struct {
	remote  ports.RemoteMirror
	timeout time.Duration
	log     zerolog.Logger
}

func newSyncer(remote ports.RemoteMirror, cfg SyncConfig, log zerolog.Logger) syncer {
	return syncer{remote: remote, timeout: cfg.RemoteTimeout, log: log}
}

// write replica un registro ya guardado localmente y clasifica el resultado.
func (s syncer) write(ctx context.Context, what string, push func(context.Context) error) dto.SyncStatus {
	st := dto.SyncStatus{Local: true}
	if s.remote == nil || !s.remote.Configured() {
		st.Message = fmt.Sprintf("%s guardado localmente. Configure APPS_SCRIPT_URL para sincronizar con Google Sheets.", what)
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := push(ctx); err != nil {
		s.log.Warn().Err(err).Str("entity", what).Msg("espejo remoto rechazó la escritura; queda solo local")
		st.RemoteError = err.Error()
		st.Message = fmt.Sprintf("%s guardado localmente. Falló la sincronización con Google Sheets.", what)
		return st
	}
	st.Sheets = true
	st.Message = fmt.Sprintf("%s guardado localmente y en Google Sheets.", what)
	return st
}

// localOnly estado para operaciones que el contrato remoto no contempla.
func localOnly(what string) dto.SyncStatus {
	return dto.SyncStatus{
		Local:   true,
		Message: fmt.Sprintf("%s actualizado solo localmente; el espejo remoto no admite esta operación.", what),
	}
}

// fetchRemote lee del espejo bajo el timeout remoto. Cualquier fallo equivale a
// "sin datos remotos".
func fetchRemote[T any](ctx context.Context, s syncer, what string, get func(context.Context) ([]*T, error)) []*T {
	if s.remote == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	recs, err := get(ctx)
	if err != nil {
		ev := s.log.Warn()
		if errors.Is(err, ports.ErrRemoteNotConfigured) {
			ev = s.log.Debug()
		}
		ev.Err(err).Str("entity", what).Msg("lectura remota omitida; se usan solo datos locales")
		return nil
	}
	return recs
}

// mergeBy concatena remote y local sin duplicados por key. Ante colisión prevalece
// el registro remoto y, dentro de cada fuente, el primero visto.
func mergeBy[T any](remote, local []*T, key func(*T) string) []*T {
	seen := make(map[string]struct{}, len(remote)+len(local))
	out := make([]*T, 0, len(remote)+len(local))
	for _, src := range [][]*T{remote, local} {
		for _, rec := range src {
			if rec == nil {
				continue
			}
			k := key(rec)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, rec)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput aplica las etiquetas validate del DTO. Devuelve ErrValidation con
// los campos que fallaron.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
