package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmullins/linkgen/internal/cache/memory"
	"github.com/kmullins/linkgen/internal/config"
	"github.com/kmullins/linkgen/internal/hashid"
	"github.com/kmullins/linkgen/internal/linkgen"
	"github.com/kmullins/linkgen/internal/qr"
	"github.com/kmullins/linkgen/internal/repository/sqlite"
	"github.com/kmullins/linkgen/internal/service"
	"github.com/kmullins/linkgen/internal/transport/client"
	httpTransport "github.com/kmullins/linkgen/internal/transport/http"
)

var rootCmd = &cobra.Command{
	Use:   "linkgen",
	Short: "A short link generation service written in Go",
	Long:  "A short link service issuing counter-based reversible keys, with SQLite backend, in-memory caching and QR code rendering",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the link generation server",
	RunE:  runServer,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for interacting with the server",
}

var createCmd = &cobra.Command{
	Use:   "create [URL]",
	Short: "Create a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateLink,
}

var getCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get information about a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetLink,
}

var qrCmd = &cobra.Command{
	Use:   "qr [KEY] [FILE]",
	Short: "Fetch the QR image for a short link and write it to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runLinkQR,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [KEY]",
	Short: "Delete a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteLink,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all short links",
	RunE:  runListLinks,
}

var encodeCmd = &cobra.Command{
	Use:   "encode [NUMBER]",
	Short: "Encode a counter value into a key without a server",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode [KEY]",
	Short: "Decode a key back into its counter value without a server",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	// Server command flags
	serverCmd.Flags().StringP("port", "p", "8080", "Server port")
	serverCmd.Flags().String("server-url", "http://localhost:8080", "Server URL (for client communication and QR payloads)")
	serverCmd.Flags().String("db-path", "links.db", "Database file path")
	serverCmd.Flags().Duration("sync-interval", 5*time.Second, "Cache sync interval")

	// Generator configuration flags
	serverCmd.Flags().String("salt", "", "Salt for the key codec")
	serverCmd.Flags().Int("min-length", 10, "Minimum key length")
	serverCmd.Flags().String("alphabet", linkgen.DefaultAlphabet, "Key alphabet")
	serverCmd.Flags().Uint64("initial-counter", 0, "Initial counter value for a fresh database")
	serverCmd.Flags().Uint64("counter-step", 100, "Counter block size reserved per database write")
	serverCmd.Flags().String("qr-payload", "url", "QR payload: 'url' or 'key'")
	serverCmd.Flags().Int("qr-size", qr.DefaultSize, "QR image size in pixels")

	// Logging configuration flags
	serverCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging (HTTP requests/responses and error details)")

	// Codec utility flags
	for _, c := range []*cobra.Command{encodeCmd, decodeCmd} {
		c.Flags().String("salt", "", "Salt for the key codec")
		c.Flags().Int("min-length", 10, "Minimum key length")
		c.Flags().String("alphabet", linkgen.DefaultAlphabet, "Key alphabet")
	}

	// Client command flags
	clientCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8080", "Server URL")
	createCmd.Flags().String("qr", "", "Write the QR image for the new link to this file")

	// Add subcommands
	clientCmd.AddCommand(createCmd, getCmd, qrCmd, deleteCmd, listCmd)
	rootCmd.AddCommand(serverCmd, clientCmd, encodeCmd, decodeCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	// Get configuration from CLI flags
	port, _ := cmd.Flags().GetString("port")
	serverURL, _ := cmd.Flags().GetString("server-url")
	dbPath, _ := cmd.Flags().GetString("db-path")
	syncInterval, _ := cmd.Flags().GetDuration("sync-interval")

	// Get generator configuration
	salt, _ := cmd.Flags().GetString("salt")
	minLength, _ := cmd.Flags().GetInt("min-length")
	alphabet, _ := cmd.Flags().GetString("alphabet")
	initialCounter, _ := cmd.Flags().GetUint64("initial-counter")
	counterStep, _ := cmd.Flags().GetUint64("counter-step")
	qrPayload, _ := cmd.Flags().GetString("qr-payload")
	qrSize, _ := cmd.Flags().GetInt("qr-size")

	// Get logging configuration
	verbose, _ := cmd.Flags().GetBool("verbose")

	genCfg := config.GeneratorConfig{
		Salt:           salt,
		MinLength:      minLength,
		Alphabet:       alphabet,
		InitialCounter: initialCounter,
		CounterStep:    counterStep,
		QRPayload:      qrPayload,
		QRSize:         qrSize,
	}

	// Create configuration
	cfg, err := config.New(port, serverURL, dbPath, syncInterval, verbose, genCfg)
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	log.Printf("Starting link generation server with config: port=%s", cfg.Server.Port)

	// Initialize database
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize cache and service
	memoryCache := memory.New()
	renderer := qr.NewPNGRenderer(cfg.Generator.QRSize)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	links, err := service.NewLinkService(initCtx, repo, memoryCache, cfg.LinkgenConfig(), renderer, service.Config{
		CounterStep: cfg.Generator.CounterStep,
	})
	if err != nil {
		return fmt.Errorf("failed to create link service: %w", err)
	}
	log.Printf("Using in-memory cache")

	defer func() {
		if err := links.Close(); err != nil {
			log.Printf("Error closing service: %v", err)
		}
	}()

	// Initialize cache with existing data
	if err := links.InitializeCache(initCtx); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	// Start cache synchronization. The sync loop and its database writes
	// outlive the startup timeout, so they get their own context that is
	// only cancelled once the final flush has run at shutdown.
	syncCtx, syncCancel := context.WithCancel(context.Background())
	defer syncCancel()

	if err := links.StartCacheSync(syncCtx, cfg.Cache.SyncInterval); err != nil {
		return fmt.Errorf("failed to start cache sync: %w", err)
	}
	defer func() {
		if err := links.StopCacheSync(); err != nil {
			log.Printf("Error stopping cache sync: %v", err)
		}
	}()

	// Create and start HTTP server
	server := httpTransport.NewServer(links, cfg.Server.Port, cfg.Logging.Verbose)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during server shutdown: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

func newCodec(cmd *cobra.Command) (*hashid.Codec, error) {
	salt, _ := cmd.Flags().GetString("salt")
	minLength, _ := cmd.Flags().GetInt("min-length")
	alphabet, _ := cmd.Flags().GetString("alphabet")

	return hashid.NewWithAlphabet(salt, minLength, alphabet)
}

func runEncode(cmd *cobra.Command, args []string) error {
	codec, err := newCodec(cmd)
	if err != nil {
		return err
	}

	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid number '%s': %w", args[0], err)
	}

	fmt.Println(codec.Encode(n))
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	codec, err := newCodec(cmd)
	if err != nil {
		return err
	}

	n, err := codec.Decode(args[0])
	if err != nil {
		return err
	}

	fmt.Println(n)
	return nil
}

func runCreateLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	qrPath, _ := cmd.Flags().GetString("qr")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Create(ctx, args[0], qrPath)
}

func runGetLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Get(ctx, args[0])
}

func runLinkQR(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.QR(ctx, args[0], args[1])
}

func runDeleteLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Delete(ctx, args[0])
}

func runListLinks(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.List(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
