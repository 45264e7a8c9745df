// Package stats holds the pure reductions over a blog collection.
// Every function is stateless and leaves its input untouched.
package stats

import "bloglist/internal/model"

// Favorite is the projection of the most-liked blog.
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogs pairs an author with how many blogs they wrote.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with the sum of likes across their blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Report bundles all four reductions for the stats endpoint.
type Report struct {
	TotalLikes int          `json:"total_likes"`
	Favorite   *Favorite    `json:"favorite"`
	MostBlogs  *AuthorBlogs `json:"most_blogs"`
	MostLikes  *AuthorLikes `json:"most_likes"`
}

// TotalLikes sums likes across all blogs. Zero for an empty collection.
func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// collection. On a tie the first blog in input order wins.
func FavoriteBlog(blogs []model.Blog) *Favorite {
	if len(blogs) == 0 {
		return nil
	}

	best := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > best.Likes {
			best = b
		}
	}

	return &Favorite{
		Title:  best.Title,
		Author: authorOf(best),
		Likes:  best.Likes,
	}
}

// MostBlogs returns the author with the most blogs, or nil for an empty
// collection. Ties go to the author whose group was seen first.
func MostBlogs(blogs []model.Blog) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}

	counts, order := groupByAuthor(blogs, func(model.Blog) int { return 1 })

	top := AuthorBlogs{Author: order[0], Blogs: counts[order[0]]}
	for _, author := range order[1:] {
		if counts[author] > top.Blogs {
			top = AuthorBlogs{Author: author, Blogs: counts[author]}
		}
	}
	return &top
}

// MostLikes returns the author whose blogs collect the most likes, or nil
// for an empty collection. Ties go to the author whose group was seen first.
func MostLikes(blogs []model.Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}

	sums, order := groupByAuthor(blogs, func(b model.Blog) int { return b.Likes })

	top := AuthorLikes{Author: order[0], Likes: sums[order[0]]}
	for _, author := range order[1:] {
		if sums[author] > top.Likes {
			top = AuthorLikes{Author: author, Likes: sums[author]}
		}
	}
	return &top
}

// groupByAuthor folds a per-blog weight into per-author totals, recording
// the order in which each author group first appeared.
func groupByAuthor(blogs []model.Blog, weight func(model.Blog) int) (map[string]int, []string) {
	totals := make(map[string]int)
	order := make([]string, 0, len(blogs))

	for _, b := range blogs {
		author := authorOf(b)
		if _, seen := totals[author]; !seen {
			order = append(order, author)
		}
		totals[author] += weight(b)
	}

	return totals, order
}

// authorOf groups blogs without an author under the empty string.
func authorOf(b model.Blog) string {
	if b.Author == nil {
		return ""
	}
	return *b.Author
}
