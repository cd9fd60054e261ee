package main

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "runtime"
    "syscall"
    "time"

    _ "github.com/go-sql-driver/mysql"
    "github.com/gorilla/mux"

    "scholarly-checkout-api/config"
    "scholarly-checkout-api/database"
    "scholarly-checkout-api/handlers"
    "scholarly-checkout-api/i18n"
    "scholarly-checkout-api/middleware"
    "scholarly-checkout-api/queue"
    "scholarly-checkout-api/services/auth"
    "scholarly-checkout-api/services/email"
    "scholarly-checkout-api/services/payment"
    "scholarly-checkout-api/services/verification"
    "scholarly-checkout-api/services/wizard"
    "scholarly-checkout-api/worker"
)

func corsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
        w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Accept-Language, Authorization")
        w.Header().Set("Access-Control-Allow-Credentials", "true")

        if r.Method == "OPTIONS" {
            w.WriteHeader(http.StatusOK)
            return
        }
        next.ServeHTTP(w, r)
    })
}

type responseWriter struct {
    http.ResponseWriter
    status int
}

func (rw *responseWriter) WriteHeader(code int) {
    rw.status = code
    rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()

        wrapper := &responseWriter{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(wrapper, r)

        // Only log slow requests and errors to keep the noise down.
        elapsed := time.Since(start)
        if elapsed > 500*time.Millisecond || wrapper.status >= 400 {
            log.Printf(
                "%s %s %s %d %v",
                r.Method,
                r.RequestURI,
                r.RemoteAddr,
                wrapper.status,
                elapsed,
            )
        }
    })
}

func main() {
    log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)

    numCPU := runtime.NumCPU()
    runtime.GOMAXPROCS(numCPU)
    log.Printf("Server starting with %d CPUs available", numCPU)

    cfg := config.Load()
    log.Printf("Configuration loaded successfully")

    // Connect to the database with retry.
    var db *database.Connection
    var err error
    for retries := 0; retries < 5; retries++ {
        db, err = database.NewConnection(cfg.Database)
        if err == nil {
            break
        }
        retryDelay := time.Duration(retries+1) * time.Second
        log.Printf("Failed to connect to database (attempt %d/5): %v. Retrying in %v...",
            retries+1, err, retryDelay)
        time.Sleep(retryDelay)
    }

    if err != nil {
        log.Fatalf("Failed to connect to database after retries: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()

    if err := db.GetDB().PingContext(ctx); err != nil {
        log.Fatalf("Failed to ping database: %v", err)
    }
    log.Println("Successfully connected to database")

    jobQueue, err := queue.NewQueue(cfg.Redis.URL, "email_jobs")
    if err != nil {
        log.Fatalf("Failed to connect to Redis: %v", err)
    }
    defer jobQueue.Close()
    log.Println("Successfully connected to Redis")

    // Core services.
    paymentService := payment.NewPaymentService(
        cfg.Gateway.BaseURL,
        cfg.Gateway.MerchantID,
        cfg.Gateway.APIKey,
    )
    emailService := email.NewSMTPService(cfg.SMTP)
    jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, db)
    translator := i18n.NewTranslator()

    sessionStore := wizard.NewStore(jobQueue.Client())
    codeService := verification.NewService(jobQueue.Client(), jobQueue)
    controller := wizard.NewController(sessionStore, codeService)

    workerConcurrency := cfg.Redis.WorkerConcurrency
    if workerConcurrency < 2 {
        workerConcurrency = 2
    } else if workerConcurrency > 8 {
        workerConcurrency = 8
    }

    emailWorker := worker.NewWorker(jobQueue, emailService)
    emailWorker.Start(workerConcurrency)
    defer emailWorker.Stop()
    log.Printf("Started email worker with %d threads", workerConcurrency)

    rateLimiter, err := middleware.NewRateLimiter(cfg.Redis.URL)
    if err != nil {
        log.Fatalf("Failed to initialize rate limiter: %v", err)
    }
    defer rateLimiter.Close()

    cookies := handlers.NewSessionCookies(cfg)

    // Handlers.
    planHandler := handlers.NewPlanHandler(db)
    wizardHandler := handlers.NewWizardHandler(db, controller, cookies, translator)
    verificationHandler := handlers.NewVerificationHandler(db, controller, cookies, translator)
    promoHandler := handlers.NewPromoHandler(db, controller, cookies, translator)
    checkoutHandler := handlers.NewCheckoutHandler(db, controller, paymentService, jobQueue, cookies, translator)
    dashboardHandler := handlers.NewDashboardHandler(db, jwtService, translator)

    router := mux.NewRouter()
    router.Use(corsMiddleware)
    router.Use(loggingMiddleware)
    router.Use(middleware.LocaleMiddleware(translator))
    router.Use(rateLimiter.RateLimitMiddleware())

    api := router.PathPrefix("/api").Subrouter()

    // Checkout wizard endpoints.
    api.HandleFunc("/checkout/plans", planHandler.GetPlans).Methods("GET", "OPTIONS")
    api.HandleFunc("/checkout/session", wizardHandler.GetSession).Methods("GET", "OPTIONS")
    api.HandleFunc("/checkout/session", wizardHandler.UpdateSession).Methods("PUT", "OPTIONS")
    api.HandleFunc("/checkout/advance", wizardHandler.Advance).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout/back", wizardHandler.Back).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout/send-verification", verificationHandler.SendVerification).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout/verify-code", verificationHandler.VerifyCode).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout/resend-code", verificationHandler.ResendCode).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout/validate-promo", promoHandler.ValidatePromo).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout/remove-promo", promoHandler.RemovePromo).Methods("POST", "OPTIONS")
    api.HandleFunc("/checkout", checkoutHandler.Submit).Methods("POST", "OPTIONS")

    // Auth and dashboard endpoints.
    api.HandleFunc("/auth/login", dashboardHandler.Login).Methods("POST", "OPTIONS")
    api.HandleFunc("/auth/refresh", dashboardHandler.Refresh).Methods("POST", "OPTIONS")

    dashboard := api.PathPrefix("/dashboard").Subrouter()
    dashboard.Use(middleware.AuthMiddleware(jwtService))
    dashboard.HandleFunc("/summary", dashboardHandler.Summary).Methods("GET", "OPTIONS")

    startTime := time.Now()

    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
        defer cancel()

        health := struct {
            Status    string `json:"status"`
            Time      string `json:"time"`
            Database  string `json:"database"`
            Redis     string `json:"redis"`
            Uptime    string `json:"uptime"`
            GoVersion string `json:"go_version"`
        }{
            Status:    "ok",
            Time:      time.Now().Format(time.RFC3339),
            Database:  "connected",
            Redis:     "connected",
            Uptime:    fmt.Sprintf("%v", time.Since(startTime)),
            GoVersion: runtime.Version(),
        }

        dbCtx, dbCancel := context.WithTimeout(ctx, 500*time.Millisecond)
        defer dbCancel()

        if err := db.GetDB().PingContext(dbCtx); err != nil {
            health.Status = "degraded"
            health.Database = "error"
        }

        redisCtx, redisCancel := context.WithTimeout(ctx, 500*time.Millisecond)
        defer redisCancel()

        if err := jobQueue.Client().Ping(redisCtx).Err(); err != nil {
            health.Status = "degraded"
            health.Redis = "error"
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(health)
    }).Methods("GET")

    srv := &http.Server{
        Addr:           fmt.Sprintf(":%s", cfg.Server.Port),
        Handler:        router,
        ReadTimeout:    15 * time.Second,
        WriteTimeout:   45 * time.Second, // long enough to cover the gateway charge window
        IdleTimeout:    120 * time.Second,
        MaxHeaderBytes: 1 << 20,
    }

    go func() {
        log.Printf("Server starting on port %s", cfg.Server.Port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server error: %v", err)
        }
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

    <-stop
    log.Println("Shutdown signal received, gracefully shutting down...")

    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer shutdownCancel()

    log.Println("Shutting down HTTP server...")
    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("Server forced to shutdown: %v", err)
    }

    log.Println("Stopping email worker...")
    emailWorker.Stop()

    time.Sleep(2 * time.Second)

    log.Println("Closing database connections...")
    db.Close()

    log.Println("Closing Redis connections...")
    jobQueue.Close()

    log.Println("Server exited properly")
}
