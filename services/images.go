package services

// Image sizes served by the TMDB image CDN
const (
	ImageSizeThumb    = "w300"
	ImageSizePoster   = "w500"
	ImageSizeOriginal = "original"
)

const (
	imageBaseURL     = "https://image.tmdb.org/t/p/"
	PlaceholderImage = "/placeholder.jpg"
)

// ImageURL builds a CDN URL for a poster or backdrop path. Movies without
// artwork get the local placeholder.
func ImageURL(path, size string) string {
	if path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = ImageSizePoster
	}
	return imageBaseURL + size + path
}
