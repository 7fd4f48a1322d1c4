package web

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productadmin/internal/logger"
	"productadmin/internal/views"
)

// Deps — всё, что нужно для сборки роутера
type Deps struct {
	Products      *ProductHandler
	Accounts      *AccountHandler
	SessionSecret string
	ImageDir      string // папка на диске с картинками
	ImageURL      string // под каким путём её раздавать, напр. "/img"
	Health        func(ctx context.Context) error
	Logger        *zap.Logger
}

func NewRouter(d Deps) (*gin.Engine, error) {
	useFormTagNames()

	r := gin.New()
	if d.Logger != nil {
		r.Use(logger.GinLogger(d.Logger))
	}
	r.Use(gin.Recovery())

	tmpl, err := views.Parse(funcMap(d.ImageURL))
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// раздача загруженных картинок
	r.Static(d.ImageURL, d.ImageDir)

	store := cookie.NewStore([]byte(d.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("pa_session", store))

	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, productListPath)
	})

	d.Products.Routes(r)
	d.Accounts.Routes(r)
	return r, nil
}
