package handlers

import (
	"net/http"

	"github.com/futdraft/futdraft-backend/middleware"
	"github.com/futdraft/futdraft-backend/services"
)

type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
	}
}

func (h *EnrollmentHandler) ids(w http.ResponseWriter, r *http.Request) (matchID, playerID int, ok bool) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	playerID, err = getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	if _, err := middleware.GetUserIDFromContext(r.Context()); err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return 0, 0, false
	}
	return matchID, playerID, true
}

// Enroll godoc
// @Summary Записать игрока на матч
// @Tags enrollments
// @Description Занимает один слот. При заполненном матче — 409.
// @Produce json
// @Param matchID path int true "Match ID"
// @Param playerID path int true "Player ID"
// @Success 201 {object} map[string]interface{} "Запись создана"
// @Failure 404 {object} map[string]string "Матч или игрок не найден"
// @Failure 409 {object} map[string]string "Матч полон / уже записан"
// @Security BearerAuth
// @Router /matches/{matchID}/players/{playerID}/enroll [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	matchID, playerID, ok := h.ids(w, r)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), matchID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"enrollment": enrollment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Unenroll godoc
// @Summary Выписать игрока с матча
// @Tags enrollments
// @Description Разрешено только до подтверждения присутствия: из состояния
// @Description confirmed сперва отменяется подтверждение, иначе 409.
// @Param matchID path int true "Match ID"
// @Param playerID path int true "Player ID"
// @Success 204 "Запись удалена"
// @Failure 400 {object} map[string]string "Игрок не записан"
// @Failure 409 {object} map[string]string "Требуется отмена подтверждения"
// @Security BearerAuth
// @Router /matches/{matchID}/players/{playerID}/enroll [delete]
func (h *EnrollmentHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	matchID, playerID, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.enrollmentService.Unenroll(r.Context(), matchID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EnrollmentHandler) ConfirmPresence(w http.ResponseWriter, r *http.Request) {
	matchID, playerID, ok := h.ids(w, r)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.ConfirmPresence(r.Context(), matchID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"enrollment": enrollment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EnrollmentHandler) UndoConfirm(w http.ResponseWriter, r *http.Request) {
	matchID, playerID, ok := h.ids(w, r)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.UndoConfirm(r.Context(), matchID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"enrollment": enrollment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Roster выдаёт все записи матча с вложенными игроками.
func (h *EnrollmentHandler) Roster(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	enrollments, err := h.enrollmentService.ListRoster(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"enrollments": enrollments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
