package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "cloudvision_backend/internal/feature/imageanalysis/transport/handler"
	"cloudvision_backend/internal/platform/http/handler"
	jwtmw "cloudvision_backend/internal/platform/jwt"
)

// Options は認証とCORSの設定です。
type Options struct {
	// JWTSecret が空の場合、/v1 は認証なしで公開されます。
	JWTSecret      string
	AllowedOrigins []string
	HealthChecks   map[string]handler.Check
}

func NewRouter(analysis *analysishandler.AnalysisHandler, opts Options) *gin.Engine {
	r := gin.Default()

	// ブラウザからの利用時のみCORSを有効化（モバイルアプリには不要）
	if len(opts.AllowedOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = opts.AllowedOrigins
		cc.AddAllowHeaders("Authorization", "Accept-Language")
		r.Use(cors.New(cc))
	}

	// 認証不要
	// 導通確認用
	health := handler.Health(opts.HealthChecks)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	v1 := r.Group("/v1")
	if opts.JWTSecret != "" {
		// リクエストヘッダーに JWT が必要になる
		v1.Use(jwtmw.AuthRequired(opts.JWTSecret))
	}
	{
		v1.POST("/analyses", analysis.Create)
		v1.GET("/analyses/:id", analysis.Get)
	}

	return r
}
