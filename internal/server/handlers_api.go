package server

import (
	"errors"
	"log"
	"net/http"

	"base64-converter/internal/converter"
	"base64-converter/internal/dataurl"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"
	// uploadSlack leaves room for multipart headers around the file body.
	uploadSlack = 64 * 1024
)

type modeRequest struct {
	Mode string `json:"mode" binding:"required,convmode"`
}

type autoRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type inputRequest struct {
	Input *string `json:"input" binding:"required"`
}

type imageDecodeRequest struct {
	Input string `json:"input"`
}

type copyRequest struct {
	Target string `json:"target" binding:"required,copytarget"`
}

var (
	modeMessages = bindMessages{
		"Mode": {
			"required": "mode is required",
			"convmode": "mode must be text or image",
		},
	}
	autoMessages = bindMessages{
		"Enabled": {"required": "enabled is required"},
	}
	inputMessages = bindMessages{
		"Input": {"required": "input is required"},
	}
	copyMessages = bindMessages{
		"Target": {
			"required":   "target is required",
			"copytarget": "target must be output or image",
		},
	}
)

func (s *Server) apiRouter() *gin.Engine {
	registerValidators()
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/usage", s.handleUsage)

	api := router.Group("/api", s.withSession)
	api.GET("/state", s.handleState)
	api.POST("/mode", s.handleSetMode)
	api.POST("/auto", s.handleSetAutoDetect)
	api.POST("/clear", s.handleClearAll)
	api.POST("/copy", s.handleCopy)

	text := api.Group("/text")
	text.POST("/input", s.handleTextInput)
	text.POST("/encode", s.handleTextEncode)
	text.POST("/decode", s.handleTextDecode)
	text.POST("/clear", s.handleTextClear)

	image := api.Group("/image")
	image.POST("/input", s.handleImageInput)
	image.POST("/upload", s.handleImageUpload)
	image.POST("/decode", s.handleImageDecode)
	image.POST("/clear", s.handleImageClear)
	return router
}

func (s *Server) withSession(c *gin.Context) {
	c.Set(sessionKey, s.sessions.ensure(c.Writer, c.Request))
	c.Next()
}

func sessionFrom(c *gin.Context) *sessionEntry {
	return c.MustGet(sessionKey).(*sessionEntry)
}

func respondState(c *gin.Context, entry *sessionEntry) {
	c.JSON(http.StatusOK, gin.H{"state": entry.session.State()})
}

func respondError(c *gin.Context, entry *sessionEntry, status int, err error) {
	c.JSON(status, gin.H{
		"error": entry.session.UserMessage(err),
		"state": entry.session.State(),
	})
}

func (s *Server) handleState(c *gin.Context) {
	respondState(c, sessionFrom(c))
}

func (s *Server) handleSetMode(c *gin.Context) {
	entry := sessionFrom(c)
	var req modeRequest
	if !bindJSON(c, entry, &req, modeMessages, "invalid mode") {
		return
	}
	mode, _ := converter.ParseMode(req.Mode)
	entry.session.SetMode(mode)
	s.touchSession(entry.id, mode)
	respondState(c, entry)
}

func (s *Server) handleSetAutoDetect(c *gin.Context) {
	entry := sessionFrom(c)
	var req autoRequest
	if !bindJSON(c, entry, &req, autoMessages, "invalid auto-detect setting") {
		return
	}
	entry.session.SetAutoDetect(*req.Enabled)
	respondState(c, entry)
}

func (s *Server) handleClearAll(c *gin.Context) {
	entry := sessionFrom(c)
	entry.session.ClearAll()
	respondState(c, entry)
}

func (s *Server) handleTextInput(c *gin.Context) {
	entry := sessionFrom(c)
	var req inputRequest
	if !bindJSON(c, entry, &req, inputMessages, "invalid input") {
		return
	}
	entry.session.SetInput(*req.Input)
	respondState(c, entry)
}

func (s *Server) handleTextEncode(c *gin.Context) {
	entry := sessionFrom(c)
	entry.session.Encode()
	respondState(c, entry)
}

func (s *Server) handleTextDecode(c *gin.Context) {
	entry := sessionFrom(c)
	entry.session.Decode()
	respondState(c, entry)
}

func (s *Server) handleTextClear(c *gin.Context) {
	entry := sessionFrom(c)
	entry.session.Clear()
	respondState(c, entry)
}

func (s *Server) handleImageUpload(c *gin.Context) {
	entry := sessionFrom(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxImageBytes+uploadSlack)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, entry, http.StatusRequestEntityTooLarge, converter.ErrFileTooLarge)
			return
		}
		respondError(c, entry, http.StatusBadRequest, converter.ErrNotAnImage)
		return
	}
	file, err := header.Open()
	if err != nil {
		log.Printf("upload open failed session_id=%s error=%v", entry.id, err)
		respondError(c, entry, http.StatusBadRequest, converter.ErrNotAnImage)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if sniffed, err := dataurl.Sniff(file); err == nil {
		mimeType = dataurl.Resolve(mimeType, sniffed)
	}
	results, err := entry.session.IngestFile(c.Request.Context(), converter.File{
		Name:     header.Filename,
		MimeType: mimeType,
		Size:     header.Size,
		Reader:   file,
	})
	if err != nil {
		_ = file.Close()
		respondError(c, entry, http.StatusBadRequest, err)
		return
	}

	res := <-results
	switch {
	case res.Err == nil:
		log.Printf("image ingested session_id=%s file=%q bytes=%d", entry.id, header.Filename, header.Size)
		respondState(c, entry)
	case errors.Is(res.Err, converter.ErrSuperseded):
		respondError(c, entry, http.StatusConflict, res.Err)
	case errors.Is(res.Err, converter.ErrFileTooLarge):
		respondError(c, entry, http.StatusBadRequest, res.Err)
	default:
		log.Printf("image read failed session_id=%s error=%v", entry.id, res.Err)
		respondError(c, entry, http.StatusBadRequest, res.Err)
	}
}

func (s *Server) handleImageInput(c *gin.Context) {
	entry := sessionFrom(c)
	var req inputRequest
	if !bindJSON(c, entry, &req, inputMessages, "invalid input") {
		return
	}
	entry.session.SetBase64Input(*req.Input)
	respondState(c, entry)
}

func (s *Server) handleImageDecode(c *gin.Context) {
	entry := sessionFrom(c)
	var req imageDecodeRequest
	if !bindJSON(c, entry, &req, nil, "invalid input") {
		return
	}
	if err := entry.session.DecodeToImage(req.Input); err != nil {
		respondError(c, entry, http.StatusBadRequest, err)
		return
	}
	respondState(c, entry)
}

func (s *Server) handleImageClear(c *gin.Context) {
	entry := sessionFrom(c)
	entry.session.ClearImage()
	respondState(c, entry)
}

func (s *Server) handleCopy(c *gin.Context) {
	entry := sessionFrom(c)
	var req copyRequest
	if !bindJSON(c, entry, &req, copyMessages, "invalid copy target") {
		return
	}
	var done <-chan error
	if req.Target == copyTargetImage {
		done = entry.session.CopyBase64(c.Request.Context())
	} else {
		done = entry.session.CopyOutput(c.Request.Context())
	}
	err := <-done
	if err != nil {
		log.Printf("copy failed session_id=%s target=%s error=%v", entry.id, req.Target, err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": err == nil, "state": entry.session.State()})
}
