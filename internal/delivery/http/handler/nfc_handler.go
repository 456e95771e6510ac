package handler

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/delivery/http/middleware"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

// tapPlatform is reported for GET taps, which come from the iOS Shortcuts
// automation opening the tag URL.
const tapPlatform = "iOS"

var tapPage = template.Must(template.New("nfc-tap").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>NFC tag received</title>
<style>
body{font-family:-apple-system,Helvetica,Arial,sans-serif;margin:0;padding:32px;background:#f5f7fa;color:#1f2933}
.card{max-width:420px;margin:0 auto;background:#fff;border-radius:12px;padding:24px;box-shadow:0 2px 8px rgba(0,0,0,.08)}
h1{font-size:20px;margin:0 0 16px}
dt{font-weight:600;margin-top:8px}
dd{margin:0;word-break:break-all}
</style>
</head>
<body>
<div class="card">
<h1>NFC tag received</h1>
<dl>
<dt>NFC ID</dt><dd>{{.NFCID}}</dd>
{{if .TagType}}<dt>Tag type</dt><dd>{{.TagType}}</dd>{{end}}
<dt>Timestamp</dt><dd>{{.Timestamp}}</dd>
</dl>
</div>
</body>
</html>
`))

type NFCHandler struct {
	nfcUC  *usecase.NFCUseCase
	logger *zap.Logger
}

func NewNFCHandler(nfcUC *usecase.NFCUseCase, logger *zap.Logger) *NFCHandler {
	return &NFCHandler{
		nfcUC:  nfcUC,
		logger: logger,
	}
}

// Tap godoc
// @Summary Record an NFC tap opened as a URL
// @Description Logs the tag read and returns an HTML confirmation page
// @Tags NFC
// @Produce html
// @Param id query string true "NFC ID"
// @Param tagType query string false "Tag type"
// @Param timestamp query string false "Read time"
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/nfc [get]
func (h *NFCHandler) Tap(c *fiber.Ctx) error {
	var q dto.NFCReadQuery
	if err := bindQuery(c, &q); err != nil {
		return utils.SendError(c, err)
	}

	result := h.nfcUC.Read(c.Context(), middleware.TraceID(c), dto.NFCReadRequest{
		NFCID:     q.ID,
		TagType:   q.TagType,
		Timestamp: q.Timestamp,
		DeviceInfo: &dto.DeviceInfo{
			Platform: tapPlatform,
			Model:    c.Get(fiber.HeaderUserAgent),
		},
	})

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return tapPage.Execute(c.Response().BodyWriter(), result)
}

// Read godoc
// @Summary Record an NFC read reported by a device
// @Tags NFC
// @Accept json
// @Produce json
// @Param request body dto.NFCReadRequest true "Tag read"
// @Success 200 {object} utils.MessageResponse{data=dto.NFCReadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/nfc/read [post]
func (h *NFCHandler) Read(c *fiber.Ctx) error {
	var req dto.NFCReadRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result := h.nfcUC.Read(c.Context(), middleware.TraceID(c), req)
	return utils.SendMessage(c, "NFC data received successfully", result)
}
