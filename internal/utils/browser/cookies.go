package browser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"ryt/internal/domain/consts"
	"ryt/internal/domain/logger"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all"
)

const (
	netscapeHeader = "# Netscape HTTP Cookie File\n# Exported by ryt. Do not edit.\n\n"

	// httpOnlyPrefix marks HttpOnly cookies in the domain field, as curl and yt-dlp write them
	httpOnlyPrefix = "#HttpOnly_"
)

// CookieExporter writes browser cookies for a URL's domain to a temporary
// Netscape cookies file, the format yt-dlp reads with --cookies.
type CookieExporter struct {
	// Dir holds the temporary files. Empty uses the system temp directory.
	Dir string

	// read returns cookies for a base domain; swapped in tests.
	read func(ctx context.Context, domain string) ([]*http.Cookie, error)
}

// NewCookieExporter returns an exporter reading every browser kooky can find.
func NewCookieExporter(dir string) *CookieExporter {
	return &CookieExporter{Dir: dir, read: readBrowserCookies}
}

// ExportCookies implements downloads.CookieExporter.
func (c *CookieExporter) ExportCookies(ctx context.Context, rawURL string) (string, func(), error) {
	noop := func() {}

	domain, err := BaseDomain(rawURL)
	if err != nil {
		return "", noop, fmt.Errorf("failed to extract base domain: %w", err)
	}

	cookies, err := c.read(ctx, domain)
	if err != nil {
		return "", noop, err
	}
	if len(cookies) == 0 {
		return "", noop, fmt.Errorf("no browser cookies found for %q", domain)
	}

	f, err := os.CreateTemp(c.Dir, "ryt-cookies-*.txt")
	if err != nil {
		return "", noop, fmt.Errorf("failed to create cookie file: %w", err)
	}
	name := f.Name()
	cleanup := func() {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			logger.Pl.W("Failed to remove cookie file %q: %v", name, err)
		}
	}

	if err := f.Chmod(consts.PermsCookieFile); err != nil {
		logger.Pl.D("Could not chmod cookie file %q: %v", name, err)
	}
	writeErr := WriteNetscape(f, cookies)
	if err := f.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		cleanup()
		return "", noop, fmt.Errorf("failed to write cookie file: %w", writeErr)
	}

	logger.Pl.I("Exported %d browser cookies for %q", len(cookies), domain)
	return name, cleanup, nil
}

// WriteNetscape writes cookies in Netscape cookies.txt format.
func WriteNetscape(w io.Writer, cookies []*http.Cookie) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(netscapeHeader); err != nil {
		return err
	}

	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		domain := c.Domain
		includeSubdomains := strings.HasPrefix(domain, ".")
		if c.HttpOnly {
			domain = httpOnlyPrefix + domain
		}

		path := c.Path
		if path == "" {
			path = "/"
		}

		var expires int64
		if !c.Expires.IsZero() {
			expires = c.Expires.Unix()
		}

		line := strings.Join([]string{
			domain,
			strings.ToUpper(strconv.FormatBool(includeSubdomains)),
			path,
			strings.ToUpper(strconv.FormatBool(c.Secure)),
			strconv.FormatInt(expires, 10),
			c.Name,
			c.Value,
		}, "\t")

		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readBrowserCookies retrieves valid cookies for domain from every browser cookie store.
func readBrowserCookies(ctx context.Context, domain string) ([]*http.Cookie, error) {
	stores := kooky.FindAllCookieStores()
	attemptedBrowsers := make(map[string]bool, len(stores))

	var all []*http.Cookie
	for _, store := range stores {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		browserName := store.Browser()
		attemptedBrowsers[browserName] = true
		logger.Pl.D("Attempting to read cookies from %s", browserName)

		cookies, err := store.ReadCookies(kooky.Valid, kooky.DomainHasSuffix(domain))
		if closeErr := store.Close(); closeErr != nil {
			logger.Pl.D("Failed to close %s cookie store: %v", browserName, closeErr)
		}
		if err != nil {
			logger.Pl.D("Failed to read cookies from %s: %v", browserName, err)
			continue
		}

		if len(cookies) > 0 {
			logger.Pl.I("Read %d cookies from %s for domain %s", len(cookies), browserName, domain)
			all = append(all, convertToHTTPCookies(cookies)...)
		}
	}

	logger.Pl.D("Attempted to read cookies from the following browsers: %v", keysFromMap(attemptedBrowsers))
	return all, nil
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
	}
	return httpCookies
}
