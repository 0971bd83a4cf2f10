package clawlaunch

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/fomo4claw/clawlaunch/twitter"
)

var (
	fieldLineRe = regexp.MustCompile(`^(\w+):\s*(.+)$`)
	walletRe    = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
)

var requiredFields = []string{"name", "symbol", "wallet", "description", "image"}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// imageHosts are hosting domains whose gallery URLs resolve to raw images.
var imageHosts = []string{
	"iili.io",
	"i.imgur.com",
	"imgur.com",
	"arweave.net",
	"ipfs.io",
	"gateway.pinata.cloud",
	"cloudflare-ipfs.com",
}

// ExampleTweet is the canonical launch format replied to users whose tweet
// failed to parse.
const ExampleTweet = `@fomo4claw_bot !launchcoin
name: Molty Coin
symbol: MOLTY
wallet: 0x742d35Cc6634C0532925a3b844Bc9e7595f2bD12
description: The official Molty token
image: https://iili.io/xxxxx.jpg
website: https://molty.xyz
twitter: @MoltyCoin`

// ParseLaunchTweet extracts a launch request from tweet text. The trigger
// check is case insensitive; field lines are "key: value", one per line,
// later duplicates winning. All errors are collected so the reply can list
// everything wrong at once.
func ParseLaunchTweet(text string) (*schema.LaunchRequest, []string) {
	if !strings.Contains(strings.ToLower(text), twitter.LaunchTrigger) {
		return nil, []string{schema.ErrNoTrigger.Error()}
	}

	fields := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		m := fieldLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m[1]))
		val := strings.TrimSpace(m[2])
		if key != "" && val != "" {
			fields[key] = val
		}
	}

	errs := make([]string, 0)
	for _, f := range requiredFields {
		if fields[f] == "" {
			errs = append(errs, "missing required field: "+f)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if !walletRe.MatchString(fields["wallet"]) {
		errs = append(errs, "invalid wallet address format")
	}

	symbol := strings.ToUpper(strings.TrimSpace(fields["symbol"]))
	// limits count characters, not bytes, so multi-byte names pass
	if utf8.RuneCountInString(symbol) > schema.MaxSymbolLength {
		errs = append(errs, fmt.Sprintf("symbol must be %d characters or less", schema.MaxSymbolLength))
	}
	if utf8.RuneCountInString(fields["name"]) > schema.MaxNameLength {
		errs = append(errs, fmt.Sprintf("name must be %d characters or less", schema.MaxNameLength))
	}
	if utf8.RuneCountInString(fields["description"]) > schema.MaxDescriptionLength {
		errs = append(errs, fmt.Sprintf("description must be %d characters or less", schema.MaxDescriptionLength))
	}

	image := strings.TrimSpace(fields["image"])
	if !isValidImageURL(image) {
		errs = append(errs, "image must be a direct URL to an image file")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &schema.LaunchRequest{
		Name:        strings.TrimSpace(fields["name"]),
		Symbol:      symbol,
		Wallet:      strings.ToLower(fields["wallet"]),
		Description: strings.TrimSpace(fields["description"]),
		Image:       image,
		Website:     strings.TrimSpace(fields["website"]),
		Twitter:     strings.TrimSpace(fields["twitter"]),
	}, nil
}

// isValidImageURL accepts ipfs:// URIs, URLs whose path carries an image
// extension, and known image hosts whose gallery paths have no extension.
func isValidImageURL(raw string) bool {
	if strings.HasPrefix(raw, "ipfs://") {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	pathname := strings.ToLower(parsed.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(pathname, ext) {
			return true
		}
	}
	for _, host := range imageHosts {
		if strings.Contains(parsed.Hostname(), host) {
			return true
		}
	}
	return false
}
