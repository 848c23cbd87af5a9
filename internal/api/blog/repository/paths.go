package blogRepository

const (
	pathBlogs      = "api/blog"
	pathYourBlogs  = "api/blog/your"
	pathBlog       = "api/blog/%s"
	pathYourBlog   = "api/blog/your/%s"
	pathLikeBlog   = "api/blog/%s/like"
	querySeriesID  = "series_id"
	fieldTitle     = "title"
	fieldSlug      = "slug"
	fieldContent   = "content"
	fieldPublished = "published"
	fieldThumbnail = "thumbnail"
	fieldTags      = "tags"
	fieldSeriesID  = "series_id"
)
