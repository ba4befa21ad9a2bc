package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports"
	"github.com/Gunvolt24/vetstock/internal/usecase"
	"github.com/Gunvolt24/vetstock/internal/webhook"
	"github.com/Gunvolt24/vetstock/pkg/logger"
	"github.com/Gunvolt24/vetstock/pkg/payloadfile"
	"github.com/Gunvolt24/vetstock/pkg/telemetry"
	"github.com/joho/godotenv"
)

// CLI для отправки действий в бэкенд автоматизаций из файлов JSON/JSONL.
func main() {
	_ = godotenv.Load(".env.local")

	action := flag.String("action", "", "action name, e.g. add-product, update-stock, view-stock")
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty or -, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	imagePath := flag.String("image", "", "label photo for log-batch or ocr-process")
	primary := flag.String("primary", envOr("VETSTOCK_WEBHOOK_PRIMARY_URL", "http://localhost:8080/webhook-proxy"), "primary base URL")
	primaryProxied := flag.Bool("primary-proxied", true, "primary is the edge proxy (?endpoint=)")
	fallback := flag.String("fallback", os.Getenv("VETSTOCK_WEBHOOK_FALLBACK_URL"), "fallback base URL (direct)")
	timeout := flag.Duration("timeout", webhook.DefaultTimeout, "timeout per attempt")
	flag.Parse()

	if *action == "" {
		fmt.Fprintln(os.Stderr, "vetctl: -action is required")
		flag.Usage()
		os.Exit(2)
	}
	act, err := domain.ParseAction(*action)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vetctl: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg, cleanup, err := logger.NewZapLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	client := webhook.NewClient(webhook.Config{
		Primary:  webhook.Target{BaseURL: *primary, Proxied: *primaryProxied},
		Fallback: webhook.Target{BaseURL: *fallback},
		Timeout:  *timeout,
	}, telemetry.NewHTTPClient(), logg)
	svc := usecase.NewInventoryService(client, nil, logg, usecase.Config{})

	var image *domain.Attachment
	if *imagePath != "" {
		if image, err = readAttachment(*imagePath); err != nil {
			fmt.Fprintf(os.Stderr, "image: %v\n", err)
			os.Exit(1)
		}
	}

	out := json.NewEncoder(os.Stdout)

	// ocr-process — только фото, без входного файла
	if act == domain.ActionOCRProcess {
		if image == nil {
			fmt.Fprintln(os.Stderr, "vetctl: ocr-process requires -image")
			os.Exit(2)
		}
		guess, res := svc.ProcessOCR(ctx, *image)
		_ = out.Encode(struct {
			domain.Result
			Guess *domain.OCRGuess `json:"guess,omitempty"`
		}{res, guess})
		if !res.Success {
			os.Exit(1)
		}
		return
	}

	submit := submitter(svc, act, image, out)
	summary, err := payloadfile.ProcessFile(ctx, *inputPath, payloadfile.InputFormat(*formatStr), os.Stdin, submit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "submit: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	if !summary.OK() {
		fmt.Fprintf(os.Stderr, "submit finished with errors (%s)\n", summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "submit ok (%s)\n", summary)
}

var errSubmitFailed = errors.New("submission failed")

// submitter — обработчик одной нагрузки: печатает Result строкой JSON.
func submitter(svc ports.InventoryService, act domain.Action, image *domain.Attachment, out *json.Encoder) payloadfile.Handler {
	return func(ctx context.Context, payload json.RawMessage) error {
		var res domain.Result
		if act == domain.ActionLogBatch && image != nil {
			var b domain.NewBatch
			if err := json.Unmarshal(payload, &b); err != nil {
				res = domain.Failed(domain.KindEncode, fmt.Sprintf("log-batch payload: %v", err))
			} else {
				res = svc.LogBatch(ctx, b, image)
			}
		} else {
			res = svc.Submit(ctx, act.String(), payload)
		}

		if err := out.Encode(res); err != nil {
			return err
		}
		if !res.Success {
			return errSubmitFailed
		}
		return nil
	}
}

func readAttachment(path string) (*domain.Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, 10<<20+1))
	if err != nil {
		return nil, err
	}
	if len(data) > 10<<20 {
		return nil, errors.New("image is larger than 10MB")
	}
	return &domain.Attachment{
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

