package cad

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"os"

	"github.com/monicapserrano/text-to-cad/internal/domain"
)

// DocumentFileName is the zip entry holding the document tree.
const DocumentFileName = "Document.xml"

// ErrNoObjects is returned when a document is written without content.
var ErrNoObjects = errors.New("no objects to write")

// Write packs the objects into an FCStd document at path. An empty
// path writes to a temporary file. Returns the path written.
func Write(objects []domain.Object3D, path string) (string, error) {
	if len(objects) == 0 {
		return "", ErrNoObjects
	}

	doc, err := buildDocument(objects)
	if err != nil {
		return "", err
	}

	f, err := openTarget(path)
	if err != nil {
		return "", err
	}
	path = f.Name()

	if err := writeArchive(f, doc); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close document: %w", err)
	}
	return path, nil
}

func openTarget(path string) (*os.File, error) {
	if path == "" {
		f, err := os.CreateTemp("", "texttocad-*.fcstd")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary document: %w", err)
		}
		return f, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return f, nil
}

func buildDocument(objects []domain.Object3D) (*xmlDocument, error) {
	doc := &xmlDocument{
		SchemaVersion:  4,
		ProgramVersion: "0.21",
	}
	doc.Objects.Count = len(objects)
	doc.ObjectData.Count = len(objects)

	for i, obj := range objects {
		typ, ok := featureTypes[obj.Kind]
		if !ok {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedShape, int(obj.Kind))
		}
		name := objectName(obj.Kind, i+1)

		params, err := obj.Params()
		if err != nil {
			return nil, err
		}
		props, err := properties(params)
		if err != nil {
			return nil, err
		}

		entry := xmlObjectEntry{Name: name}
		for _, p := range props {
			entry.Properties.Items = append(entry.Properties.Items, xmlProperty{
				Name:  p.name,
				Type:  p.typ,
				Float: &xmlFloat{Value: p.value},
			})
		}

		q := obj.Rotation.Quaternion()
		entry.Properties.Items = append(entry.Properties.Items, xmlProperty{
			Name: "Placement",
			Type: "App::PropertyPlacement",
			Placement: &xmlPlacement{
				Px: obj.Translation.X,
				Py: obj.Translation.Y,
				Pz: obj.Translation.Z,
				Q0: q.X,
				Q1: q.Y,
				Q2: q.Z,
				Q3: q.W,
			},
		})
		entry.Properties.Count = len(entry.Properties.Items)

		doc.Objects.Items = append(doc.Objects.Items, xmlObjectID{Type: typ, Name: name})
		doc.ObjectData.Items = append(doc.ObjectData.Items, entry)
	}
	return doc, nil
}

func writeArchive(f *os.File, doc *xmlDocument) error {
	zw := zip.NewWriter(f)

	w, err := zw.Create(DocumentFileName)
	if err != nil {
		return fmt.Errorf("failed to create %s entry: %w", DocumentFileName, err)
	}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

type xmlDocument struct {
	XMLName        xml.Name      `xml:"Document"`
	SchemaVersion  int           `xml:"SchemaVersion,attr"`
	ProgramVersion string        `xml:"ProgramVersion,attr"`
	Objects        xmlObjects    `xml:"Objects"`
	ObjectData     xmlObjectData `xml:"ObjectData"`
}

type xmlObjects struct {
	Count int           `xml:"Count,attr"`
	Items []xmlObjectID `xml:"Object"`
}

type xmlObjectID struct {
	Type string `xml:"type,attr"`
	Name string `xml:"name,attr"`
}

type xmlObjectData struct {
	Count int              `xml:"Count,attr"`
	Items []xmlObjectEntry `xml:"Object"`
}

type xmlObjectEntry struct {
	Name       string        `xml:"name,attr"`
	Properties xmlProperties `xml:"Properties"`
}

type xmlProperties struct {
	Count int           `xml:"Count,attr"`
	Items []xmlProperty `xml:"Property"`
}

type xmlProperty struct {
	Name      string        `xml:"name,attr"`
	Type      string        `xml:"type,attr"`
	Float     *xmlFloat     `xml:"Float,omitempty"`
	Placement *xmlPlacement `xml:"PropertyPlacement,omitempty"`
}

type xmlFloat struct {
	Value float64 `xml:"value,attr"`
}

type xmlPlacement struct {
	Px float64 `xml:"Px,attr"`
	Py float64 `xml:"Py,attr"`
	Pz float64 `xml:"Pz,attr"`
	Q0 float64 `xml:"Q0,attr"`
	Q1 float64 `xml:"Q1,attr"`
	Q2 float64 `xml:"Q2,attr"`
	Q3 float64 `xml:"Q3,attr"`
}
