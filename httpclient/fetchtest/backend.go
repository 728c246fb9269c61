package fetchtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Defaults for the login endpoint.
const (
	DefaultUsername = "a"
	DefaultPassword = "b"
	DefaultToken    = "test-token"
)

// Envelope is the response body shape of the /api routes.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
}

// Echo is the JSON body returned by /echo.
type Echo struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Query       string            `json:"query"`
	Headers     map[string]string `json:"headers"`
	ContentType string            `json:"content_type"`
	Body        string            `json:"body"`
}

// Backend is a gin engine served by an httptest.Server.
type Backend struct {
	// URL is the base URL of the server, without a trailing slash.
	URL string
	// Username, Password and Token drive /api/login.
	Username string
	Password string
	Token    string

	server   *httptest.Server
	hits     atomic.Int64
	release  chan struct{}
	released sync.Once
}

// NewBackend starts a backend that is shut down when t finishes.
// Requests blocked on /slow are released before the server closes.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		Username: DefaultUsername,
		Password: DefaultPassword,
		Token:    DefaultToken,
		release:  make(chan struct{}),
	}
	b.server = httptest.NewServer(b.engine())
	b.URL = b.server.URL

	t.Cleanup(b.server.Close)
	t.Cleanup(b.Release)
	return b
}

// Release unblocks every pending and future /slow request.
func (b *Backend) Release() {
	b.released.Do(func() { close(b.release) })
}

// Hits returns the number of requests served.
func (b *Backend) Hits() int64 {
	return b.hits.Load()
}

// Client returns an *http.Client for the backend.
func (b *Backend) Client() *http.Client {
	return b.server.Client()
}

func (b *Backend) engine() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		b.hits.Add(1)
		c.Next()
	})

	api := r.Group("/api")
	api.GET("/checkToken", b.checkToken)
	api.POST("/login", b.login)

	r.Any("/echo", echo)
	r.GET("/chunked", chunked)
	r.GET("/slow", b.slow)
	r.GET("/status/:code", status)
	r.GET("/charset/gbk", gbk)
	r.GET("/json/malformed", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`{"oops":`))
	})
	r.GET("/redirect", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/echo")
	})
	r.GET("/cookie", cookie)
	return r
}

func (b *Backend) checkToken(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" || token != b.Token {
		c.JSON(http.StatusUnauthorized, Envelope{Message: "unauthorized", Code: http.StatusUnauthorized})
		return
	}
	c.JSON(http.StatusOK, Envelope{Success: true, Message: "ok", Data: true})
}

func (b *Backend) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Message: err.Error(), Code: http.StatusBadRequest})
		return
	}
	if req.Username != b.Username || req.Password != b.Password {
		c.JSON(http.StatusOK, Envelope{Message: "invalid credentials", Code: 1})
		return
	}
	c.JSON(http.StatusOK, Envelope{Success: true, Message: "ok", Data: gin.H{"token": b.Token}})
}

func echo(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	headers := make(map[string]string, len(c.Request.Header))
	for k := range c.Request.Header {
		headers[k] = c.Request.Header.Get(k)
	}
	c.JSON(http.StatusOK, Echo{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Query:       c.Request.URL.RawQuery,
		Headers:     headers,
		ContentType: c.ContentType(),
		Body:        string(body),
	})
}

// chunked writes n flushed chunks of "chunk-<i>;".
func chunked(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "3"))
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	for i := range n {
		_, _ = c.Writer.WriteString("chunk-" + strconv.Itoa(i) + ";")
		c.Writer.Flush()
	}
}

func (b *Backend) slow(c *gin.Context) {
	select {
	case <-b.release:
		c.String(http.StatusOK, "late")
	case <-c.Request.Context().Done():
	}
}

func status(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code < 100 || code > 999 {
		c.String(http.StatusBadRequest, "bad status")
		return
	}
	c.String(code, http.StatusText(code))
}

// gbk serves "你好" encoded as GBK.
func gbk(c *gin.Context) {
	body, err := simplifiedchinese.GBK.NewEncoder().String("你好")
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=gbk", []byte(body))
}

// cookie sets sid=abc and reports the sid cookie the request carried.
func cookie(c *gin.Context) {
	got, _ := c.Cookie("sid")
	c.SetCookie("sid", "abc", 0, "/", "", false, true)
	c.String(http.StatusOK, got)
}
