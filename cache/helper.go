package cache

import "fmt"

const cacheImage = "image:%s:%s"

func constructKey(listingID string, imageName string) string {
	return fmt.Sprintf(cacheImage, listingID, imageName)
}
