// Package crates provides access to the crates.io registry API: pack
// lookup, keyword-filtered search, owner listing, and tarball download
// from the static CDN.
//
// crates.io requires a User-Agent header on every request; callers pass
// one to NewClient.
package crates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/packforge/packforge/pkg/cache"
	"github.com/packforge/packforge/pkg/registry"
)

const (
	defaultAPIBaseURL = "https://crates.io/api/v1/crates"
	defaultCDNBaseURL = "https://static.crates.io/crates"

	// searchKeyword is the crates.io keyword every published pack carries.
	searchKeyword = "packforge"
)

// CrateInfo holds the registry metadata packforge needs about a crate.
type CrateInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"` // latest non-yanked version
	Description string `json:"description"`
}

// SearchResult is one row of a pack search.
type SearchResult struct {
	Name        string `json:"name"`
	MaxVersion  string `json:"max_version"`
	Description string `json:"description"`
}

// Owner is a crate owner as reported by the owners endpoint.
type Owner struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// Client talks to crates.io. All methods are safe for concurrent use.
type Client struct {
	*registry.Client

	// Overridable for self-hosted registries and tests.
	APIBaseURL string
	CDNBaseURL string
}

// NewClient creates a crates.io client backed by the given cache.
func NewClient(backend cache.Cache, ttl time.Duration, userAgent string) *Client {
	headers := map[string]string{"User-Agent": userAgent}
	return &Client{
		Client:     registry.NewClient(backend, "crates:", ttl, headers),
		APIBaseURL: defaultAPIBaseURL,
		CDNBaseURL: defaultCDNBaseURL,
	}
}

// Lookup fetches crate metadata and resolves the latest non-yanked version.
// Returns [registry.ErrNotFound] if the crate does not exist or every
// published version is yanked.
func (c *Client) Lookup(ctx context.Context, crate string, refresh bool) (*CrateInfo, error) {
	var info CrateInfo
	err := c.Cached(ctx, "lookup:"+crate, refresh, &info, func() error {
		return c.lookup(ctx, crate, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) lookup(ctx context.Context, crate string, info *CrateInfo) error {
	var data crateResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s", c.APIBaseURL, crate), &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	version := ""
	for _, v := range data.Versions {
		if !v.Yanked {
			version = v.Num
			break
		}
	}
	if version == "" {
		return fmt.Errorf("%w: no non-yanked versions of %s", registry.ErrNotFound, crate)
	}

	*info = CrateInfo{
		Name:        data.Crate.Name,
		Version:     version,
		Description: data.Crate.Description,
	}
	return nil
}

// Search queries crates.io for published packs. The query may be empty to
// list all packs. Results are restricted to crates carrying the pack
// keyword whose names end with the pack suffix.
func (c *Client) Search(ctx context.Context, query string, refresh bool) ([]SearchResult, error) {
	var results []SearchResult
	err := c.Cached(ctx, "search:"+query, refresh, &results, func() error {
		return c.search(ctx, query, &results)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) search(ctx context.Context, query string, results *[]SearchResult) error {
	url := fmt.Sprintf("%s?keyword=%s&per_page=50", c.APIBaseURL, searchKeyword)
	if query != "" {
		url = fmt.Sprintf("%s?q=%s&keyword=%s&per_page=50", c.APIBaseURL, registry.URLEncode(query), searchKeyword)
	}

	var data searchResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return err
	}

	// Keyword search is advisory; the name suffix is the contract.
	var packs []SearchResult
	for _, cr := range data.Crates {
		if IsPackName(cr.Name) {
			packs = append(packs, SearchResult{
				Name:        cr.Name,
				MaxVersion:  cr.MaxVersion,
				Description: cr.Description,
			})
		}
	}
	*results = packs
	return nil
}

// Owners lists the owners of a crate. Callers treat a failure here as
// non-fatal; owner data only decorates detail views.
func (c *Client) Owners(ctx context.Context, crate string, refresh bool) ([]Owner, error) {
	var owners []Owner
	err := c.Cached(ctx, "owners:"+crate, refresh, &owners, func() error {
		var data ownersResponse
		if err := c.Get(ctx, fmt.Sprintf("%s/%s/owners", c.APIBaseURL, crate), &data); err != nil {
			return err
		}
		owners = data.Users
		return nil
	})
	if err != nil {
		return nil, err
	}
	return owners, nil
}

type crateResponse struct {
	Crate struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"crate"`
	Versions []struct {
		Num    string `json:"num"`
		Yanked bool   `json:"yanked"`
	} `json:"versions"`
}

type searchResponse struct {
	Crates []struct {
		Name        string `json:"name"`
		MaxVersion  string `json:"max_version"`
		Description string `json:"description"`
	} `json:"crates"`
}

type ownersResponse struct {
	Users []Owner `json:"users"`
}
