package redis

import (
	"strings"

	"github.com/mfreitas/storegate/internal/model"
)

// Key layout:
//
//	user:{id}            -> JSON user
//	user:email:{email}   -> user id (login lookup index)
//	users:index          -> set of user keys
//	product:{id}         -> JSON product
//	product:slug:{slug}  -> product id (term lookup index)
//	products:index       -> zset of product keys scored by creation time

const (
	usersIndexKey    = "users:index"
	productsIndexKey = "products:index"
)

func userKey(id model.UserID) string {
	return "user:" + string(id)
}

func emailIndexKey(email string) string {
	return "user:email:" + strings.ToLower(email)
}

func productKey(id model.ProductID) string {
	return "product:" + string(id)
}

func slugIndexKey(slug string) string {
	return "product:slug:" + slug
}
