package gdocai

import (
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ToJSON renders a Document AI message as pretty-printed JSON
func ToJSON(msg proto.Message) (string, error) {
	jsonData, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// ExtractImageFromPage pulls out the image data from a Document AI page
func ExtractImageFromPage(page *documentaipb.Document_Page) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("no documentai page provided")
	}

	image := page.GetImage()
	if image == nil {
		return nil, fmt.Errorf("no image found in documentai page")
	}

	content := image.GetContent()
	if len(content) == 0 {
		return nil, fmt.Errorf("image content is empty")
	}

	return content, nil
}
