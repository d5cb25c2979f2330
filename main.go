package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"cardkeep/config"
	"cardkeep/loader"
	"cardkeep/recognizer"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	rec := buildRecognizer(cfg)

	mux := http.NewServeMux()

	if _, err := os.Stat("static"); err == nil {
		mux.Handle("/", http.FileServer(http.Dir("./static")))
	} else {
		log.Println("WARN: 'static' directory not found. Serving API only.")
	}

	SetupRoutes(mux, dbConn, rec)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on http://localhost%s", addr)

	if cfg.OpenBrowser {
		openBrowser(fmt.Sprintf("http://localhost%s", addr))
	}

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

// buildRecognizer wires the Gemini-backed card recognizer. The API key
// comes from the environment first, then the config file. Without a
// key the recognize endpoint stays up but reports unavailable.
func buildRecognizer(cfg config.Config) *recognizer.Recognizer {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.GeminiAPIKey
	}
	if apiKey == "" {
		log.Println("WARN: No Gemini API key configured. Card recognition is disabled.")
		return nil
	}

	rec, err := recognizer.New(context.Background(), apiKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("WARN: Failed to create card recognizer: %v. Card recognition is disabled.", err)
		return nil
	}
	log.Printf("Card recognizer ready (model: %s).", cfg.GeminiModel)
	return rec
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
