package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/suzanemu/pubg-point-bot/middleware"
	"github.com/suzanemu/pubg-point-bot/services"
)

// maxUploadBytes ограничивает суммарный размер multipart-запроса
// со скриншотами (4 снимка по ~5 МБ с запасом).
const maxUploadBytes = 32 << 20

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// SubmitManual принимает результат матча, введённый админом вручную.
func (h *ResultHandler) SubmitManual(w http.ResponseWriter, r *http.Request) {
	var input services.ManualResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		input.PlayerID = &userID
	}

	result, err := h.resultService.SubmitManualResult(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"result": result}, nil)
}

// SubmitScreenshots принимает пакет скриншотов от игрока. Команда
// берётся из JWT, а не из запроса: игрок грузит только за свою команду.
func (h *ResultHandler) SubmitScreenshots(w http.ResponseWriter, r *http.Request) {
	teamID, err := middleware.GetTeamIDFromContext(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, services.ErrPlayerWithoutTeam)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	fileHeaders := r.MultipartForm.File["screenshots"]
	if len(fileHeaders) == 0 {
		badRequestResponse(w, r, errors.New("no screenshots attached, use the 'screenshots' form field"))
		return
	}
	if len(fileHeaders) > services.MaxScreenshotBatch {
		mapServiceErrorToHTTP(w, r, services.ErrBatchTooLarge)
		return
	}

	input := services.ScreenshotBatchInput{TeamID: teamID}
	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		input.PlayerID = &userID
	}

	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err))
			return
		}
		defer file.Close()

		input.Files = append(input.Files, services.ScreenshotFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      file,
		})
	}

	report, err := h.resultService.SubmitScreenshots(r.Context(), input)
	if err != nil {
		// Лимиты AI-шлюза: часть пакета могла быть принята до сбоя,
		// поэтому отчёт возвращается вместе с ошибкой.
		if errors.Is(err, services.ErrAnalyzerUnavailable) && report != nil {
			writeJSON(w, http.StatusServiceUnavailable, jsonResponse{
				"error":  err.Error(),
				"report": report,
			}, nil)
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	if report.Accepted > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, jsonResponse{"report": report}, nil)
}

// ListTeamResults отдаёт принятые результаты команды.
func (h *ResultHandler) ListTeamResults(w http.ResponseWriter, r *http.Request) {
	teamID, err := idParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ListTeamResults(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil)
}
