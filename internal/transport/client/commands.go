package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Commands provides command-line operations for the client
type Commands struct {
	client *Client
}

// NewCommands creates a new Commands instance
func NewCommands(client *Client) *Commands {
	return &Commands{
		client: client,
	}
}

// Create creates a short link and displays the result. When qrPath is set
// the QR image returned by the server is written there as PNG.
func (c *Commands) Create(ctx context.Context, targetURL, qrPath string) error {
	result, err := c.client.CreateLink(ctx, targetURL, qrPath != "")
	if err != nil {
		return err
	}

	fmt.Printf("Short link created:\n")
	fmt.Printf("Key: %s\n", result.Key)
	fmt.Printf("Short URL: %s\n", result.ShortURL)
	fmt.Printf("Target URL: %s\n", result.TargetURL)
	fmt.Printf("Created At: %s\n", result.CreatedAt.Format(time.RFC3339))

	if qrPath != "" {
		if len(result.QRPNG) == 0 {
			return fmt.Errorf("server did not return a QR image")
		}
		if err := os.WriteFile(qrPath, result.QRPNG, 0644); err != nil {
			return fmt.Errorf("failed to write QR image: %w", err)
		}
		fmt.Printf("QR image written to %s\n", qrPath)
	}

	return nil
}

// Get retrieves and displays information about a short link
func (c *Commands) Get(ctx context.Context, key string) error {
	entry, err := c.client.GetLink(ctx, key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Key '%s' not found\n", key)
			return nil
		}
		return err
	}

	fmt.Printf("Link Information:\n")
	fmt.Printf("Key: %s\n", entry.Key)
	fmt.Printf("Target URL: %s\n", entry.TargetURL)
	fmt.Printf("Created At: %s\n", entry.CreatedAt.Format(time.RFC3339))
	if entry.LastHitAt != nil {
		fmt.Printf("Last Hit At: %s\n", entry.LastHitAt.Format(time.RFC3339))
	} else {
		fmt.Printf("Last Hit At: Never\n")
	}
	fmt.Printf("Hit Count: %d\n", entry.HitCount)

	return nil
}

// QR fetches the QR image for an existing key and writes it to qrPath
func (c *Commands) QR(ctx context.Context, key, qrPath string) error {
	png, err := c.client.GetLinkQR(ctx, key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Key '%s' not found\n", key)
			return nil
		}
		return err
	}

	if err := os.WriteFile(qrPath, png, 0644); err != nil {
		return fmt.Errorf("failed to write QR image: %w", err)
	}

	fmt.Printf("QR image written to %s\n", qrPath)
	return nil
}

// Delete removes a short link
func (c *Commands) Delete(ctx context.Context, key string) error {
	err := c.client.DeleteLink(ctx, key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Key '%s' not found\n", key)
			return nil
		}
		return err
	}

	fmt.Printf("Short link '%s' deleted successfully\n", key)
	return nil
}

// List displays all short links in a table format
func (c *Commands) List(ctx context.Context) error {
	entries, err := c.client.ListLinks(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No links found")
		return nil
	}

	fmt.Printf("%-15s %-50s %-20s %-20s %s\n", "Key", "Target URL", "Created At", "Last Hit", "Hit Count")
	fmt.Println(strings.Repeat("-", 120))

	for _, entry := range entries {
		lastHit := "Never"
		if entry.LastHitAt != nil {
			lastHit = entry.LastHitAt.Format("2006-01-02 15:04:05")
		}

		targetURL := entry.TargetURL
		if len(targetURL) > 50 {
			targetURL = targetURL[:47] + "..."
		}

		fmt.Printf("%-15s %-50s %-20s %-20s %d\n",
			entry.Key,
			targetURL,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			lastHit,
			entry.HitCount,
		)
	}

	return nil
}
