package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/application/usecase"
)

// AdminHandler mantenimiento del almacén y del espejo remoto.
type AdminHandler struct {
	uc *usecase.MaintenanceUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.MaintenanceUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Stats godoc
// @Summary      Conteos del almacén local
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  repository.StoreStats
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.uc.Stats())
}

// Reset godoc
// @Summary      Restablecer el almacén local
// @Description  Borra usuarios, productos y órdenes locales y vuelve a sembrar el admin y el catálogo de ejemplo.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  repository.StoreStats
// @Router       /api/admin/reset [post]
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	st, err := h.uc.Reset(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

// RemoteStatus godoc
// @Summary      Estado del espejo remoto
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RemoteStatusResponse
// @Router       /api/admin/remote [get]
func (h *AdminHandler) RemoteStatus(c *fiber.Ctx) error {
	return c.JSON(h.uc.RemoteStatus())
}

// SetRemote godoc
// @Summary      Cambiar URL del espejo remoto
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetRemoteEndpointRequest  true  "URL del Web App; vacía deshabilita"
// @Success      200   {object}  dto.RemoteStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/remote [put]
func (h *AdminHandler) SetRemote(c *fiber.Ctx) error {
	var in dto.SetRemoteEndpointRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetRemoteEndpoint(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
