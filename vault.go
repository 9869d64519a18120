package idanalyzer

import (
	"context"
	"net/url"
	"strconv"
)

// Vault reads and manages documents stored by the Core API and DocuPass.
//
// Vault has no local settings. Every method performs one request.
type Vault struct {
	client
}

// NewVault creates a Vault client.
//
// Parameters:
//   - apiKey: Your API key (required)
//   - region: "US", "EU" or a custom endpoint URL (required)
//   - opts: Optional HTTP settings
func NewVault(apiKey, region string, opts ...Option) (*Vault, error) {
	c, err := newClient(apiKey, region, "", opts)
	if err != nil {
		return nil, err
	}
	return &Vault{client: c}, nil
}

// ListOptions filters, orders and pages a vault listing. Zero values select
// the server side defaults listed on each field.
type ListOptions struct {
	// Filter holds up to 5 filter statements such as "createtime>=2024/01/01".
	Filter []string

	// OrderBy is the field to sort on. Default "createtime".
	OrderBy string

	// Sort is "ASC" or "DESC". Default "DESC".
	Sort string

	// Limit is the number of entries to return. Default 10.
	Limit int

	// Offset skips that many entries. Default 0.
	Offset int
}

// MaxListFilters is the most filter statements List accepts.
const MaxListFilters = 5

// Get returns one vault entry.
func (v *Vault) Get(ctx context.Context, id string) (Response, error) {
	if id == "" {
		return nil, invalidArgument("vault entry ID required")
	}
	form := url.Values{}
	form.Set("id", id)
	return v.action(ctx, "get", form)
}

// List returns vault entries. Filtering, ordering and paging happen on the
// server.
//
// Example:
//
//	resp, err := vault.List(ctx, idanalyzer.ListOptions{
//	    Filter: []string{"docupass_customid=" + userID},
//	    Limit:  20,
//	})
func (v *Vault) List(ctx context.Context, opts ListOptions) (Response, error) {
	if len(opts.Filter) > MaxListFilters {
		return nil, invalidArgument("filter must not exceed maximum %d filter strings", MaxListFilters)
	}
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, invalidArgument("limit and offset must not be negative")
	}

	form := url.Values{}
	if len(opts.Filter) > 0 {
		form["filter"] = append([]string(nil), opts.Filter...)
	}
	form.Set("orderby", orDefault(opts.OrderBy, "createtime"))
	form.Set("sort", orDefault(opts.Sort, "DESC"))
	limit := opts.Limit
	if limit == 0 {
		limit = 10
	}
	form.Set("limit", strconv.Itoa(limit))
	form.Set("offset", strconv.Itoa(opts.Offset))

	return v.action(ctx, "list", form)
}

// Update overwrites fields of a vault entry. data needs at least one field.
func (v *Vault) Update(ctx context.Context, id string, data map[string]interface{}) (Response, error) {
	if id == "" {
		return nil, invalidArgument("vault entry ID required")
	}
	if len(data) == 0 {
		return nil, invalidArgument("minimum one set of data required")
	}

	form := url.Values{}
	if err := Params(data).encodeInto(form); err != nil {
		return nil, err
	}
	form.Set("id", id)
	return v.action(ctx, "update", form)
}

// Delete removes one or more vault entries.
func (v *Vault) Delete(ctx context.Context, ids ...string) (Response, error) {
	if len(ids) == 0 {
		return nil, invalidArgument("vault entry ID required")
	}
	for _, id := range ids {
		if id == "" {
			return nil, invalidArgument("vault entry ID required")
		}
	}
	form := url.Values{"id": append([]string(nil), ids...)}
	return v.action(ctx, "delete", form)
}

// AddImage attaches a document or face image to an existing entry. image is
// a URL, a local file path or base64 content.
func (v *Vault) AddImage(ctx context.Context, id, image string, kind VaultImageType) (Response, error) {
	if id == "" {
		return nil, invalidArgument("vault entry ID required")
	}
	if kind != VaultImageDocument && kind != VaultImagePerson {
		return nil, invalidArgument("invalid image type, 0 or 1 accepted")
	}

	form := url.Values{}
	form.Set("id", id)
	form.Set("type", strconv.Itoa(int(kind)))
	if err := setMedia(form, image, "imageurl", "image", "image"); err != nil {
		return nil, err
	}
	return v.action(ctx, "addimage", form)
}

// DeleteImage removes an image from a vault entry.
func (v *Vault) DeleteImage(ctx context.Context, id, imageID string) (Response, error) {
	if id == "" {
		return nil, invalidArgument("vault entry ID required")
	}
	if imageID == "" {
		return nil, invalidArgument("image ID required")
	}
	form := url.Values{}
	form.Set("id", id)
	form.Set("imageid", imageID)
	return v.action(ctx, "deleteimage", form)
}

// SearchFace finds up to maxEntry (1 to 10) vault entries whose face matches
// image with at least the given confidence in (0, 1]. The vault must be
// trained first, see TrainFace.
func (v *Vault) SearchFace(ctx context.Context, image string, maxEntry int, threshold float64) (Response, error) {
	if maxEntry < 1 || maxEntry > 10 {
		return nil, invalidArgument("invalid max entry, integer between 1 to 10 accepted")
	}
	if err := checkScore("threshold value", threshold); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("maxentry", strconv.Itoa(maxEntry))
	form.Set("threshold", strconv.FormatFloat(threshold, 'f', -1, 64))
	if err := setMedia(form, image, "imageurl", "image", "image"); err != nil {
		return nil, err
	}
	return v.action(ctx, "searchface", form)
}

// TrainFace starts training the vault for face search.
func (v *Vault) TrainFace(ctx context.Context) (Response, error) {
	return v.action(ctx, "train", nil)
}

// TrainingStatus reports the progress of face search training.
func (v *Vault) TrainingStatus(ctx context.Context) (Response, error) {
	return v.action(ctx, "trainstatus", nil)
}

func (v *Vault) action(ctx context.Context, name string, form url.Values) (Response, error) {
	return v.post(ctx, "vault/"+name, form)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
