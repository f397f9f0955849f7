package models

import "encoding/json"

// Image is the canonical in-memory shape for an entity image. The backend has
// served two historical wire shapes for image arrays: the current
// `[{"id": 3, "url": "..."}]` and the legacy `["..."]`. Both decode into this
// one shape; nothing past the API boundary branches on wire format.
type Image struct {
	ID  int64  `json:"id,omitempty"`
	URL string `json:"url"`
}

// ImageList decodes either wire shape for an image array.
type ImageList []Image

// UnmarshalJSON tries the object form first and falls back to the legacy
// array-of-strings form. Legacy entries carry no id, so they cannot be
// individually deleted during an update; the form layer treats them as
// replace-only.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	var objs []Image
	if err := json.Unmarshal(data, &objs); err == nil {
		*l = objs
		return nil
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return err
	}
	imgs := make([]Image, 0, len(urls))
	for _, u := range urls {
		imgs = append(imgs, Image{URL: u})
	}
	*l = imgs
	return nil
}

// URLs returns just the image URLs, in order.
func (l ImageList) URLs() []string {
	out := make([]string, 0, len(l))
	for _, img := range l {
		out = append(out, img.URL)
	}
	return out
}
