package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

type LogLevel string

const (
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

var webhookClient = &http.Client{Timeout: 10 * time.Second}

func getColor(level LogLevel) int {
	switch level {
	case Info:
		return ColorSuccess
	case Warn:
		return ColorAlert
	case Error:
		return ColorError
	default:
		return ColorInfo
	}
}

func buildLogPayload(level LogLevel, module, operation, extraInfo string, now time.Time) *discordgo.WebhookParams {
	return &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{{
			Title: string(level) + " Log",
			Color: getColor(level),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Module", Value: module},
				{Name: "Operation", Value: operation},
				{Name: "Details", Value: extraInfo},
			},
			Timestamp: now.UTC().Format(time.RFC3339),
		}},
	}
}

// sendLog posts an embed to a Discord webhook. An empty webhookURL disables it.
func sendLog(ctx context.Context, webhookURL string, level LogLevel, module, operation, extraInfo string) error {
	if webhookURL == "" {
		return nil
	}

	jsonPayload, err := json.Marshal(buildLogPayload(level, module, operation, extraInfo, time.Now()))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := webhookClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to send log to discord, status: %s, body: %s", resp.Status, string(body))
	}
	return nil
}

func LogInfo(ctx context.Context, webhookURL, module, operation, extraInfo string) error {
	return sendLog(ctx, webhookURL, Info, module, operation, extraInfo)
}

func LogWarn(ctx context.Context, webhookURL, module, operation, extraInfo string) error {
	return sendLog(ctx, webhookURL, Warn, module, operation, extraInfo)
}

func LogError(ctx context.Context, webhookURL, module, operation, extraInfo string) error {
	return sendLog(ctx, webhookURL, Error, module, operation, extraInfo)
}
