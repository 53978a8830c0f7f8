package main

import (
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"todo-api/api"
	"todo-api/storage"
	"todo-api/todo"
	"todo-api/user"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	store := todo.NewStore()
	users := user.NewStore()

	var todos api.TodoService = store
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		redisOpts, err := redis.ParseURL(redisConn)
		if err != nil {
			parts := strings.Split(redisConn, ",")
			redisOpts = &redis.Options{Addr: parts[0]}
			for _, p := range parts[1:] {
				kv := strings.SplitN(p, "=", 2)
				if len(kv) != 2 {
					continue
				}
				switch strings.ToLower(kv[0]) {
				case "password":
					redisOpts.Password = kv[1]
				case "ssl":
					if strings.ToLower(kv[1]) == "true" {
						redisOpts.TLSConfig = &tls.Config{}
					}
				}
			}
		}
		rc := redis.NewClient(redisOpts)
		cacheTTL := time.Minute
		if v := os.Getenv("CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid CACHE_TTL: %v", err)
			}
			cacheTTL = d
		}
		todos = storage.NewCache(store, rc, cacheTTL)
	}

	var auth *api.Auth
	if jwksURL := os.Getenv("JWKS_URL"); jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			log.Fatalf("jwks: %v", err)
		}
		auth = api.NewJWKSAuth(jwks, os.Getenv("JWT_AUDIENCE"), os.Getenv("JWT_ISSUER"))
	} else {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Fatal("missing auth config: set JWT_SECRET or JWKS_URL")
		}
		tokenTTL := time.Hour
		if v := os.Getenv("JWT_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid JWT_TTL: %v", err)
			}
			tokenTTL = d
		}
		auth = api.NewLocalAuth([]byte(secret), os.Getenv("JWT_ISSUER"), tokenTTL)
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger := log.New()
	api.Register(e, todos, users, auth, auth, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		listenAddr = val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
