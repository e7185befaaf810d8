// Package dicomtest writes small, real DICOM files used as test
// fixtures: a fully tagged image with a constant pixel value, a
// metadata-only file, and a corrupt file that only pretends to be DICOM.
package dicomtest

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Metadata describes the tag values stamped on a fixture file. Empty
// fields are omitted from the dataset entirely, which lets tests exercise
// absent-field handling.
type Metadata struct {
	PatientID        string
	PatientName      string
	StudyInstanceUID string
	StudyDescription string
	StudyDate        string
	Modality         string
}

// DefaultMetadata returns a fully populated metadata set.
func DefaultMetadata() Metadata {
	return Metadata{
		PatientID:        "PID000042",
		PatientName:      "DOE^JANE",
		StudyInstanceUID: deterministicUID("fixture_study"),
		StudyDescription: "HEAD MR",
		StudyDate:        "20240315",
		Modality:         "MR",
	}
}

// WriteImage writes a DICOM file carrying meta plus one 16-bit
// MONOCHROME2 frame of the given dimensions where every sample holds
// value. The mean intensity of such a file is exactly float64(value).
func WriteImage(path string, meta Metadata, rows, cols int, value uint16) error {
	nativeFrame := frame.NewNativeFrame[uint16](16, rows, cols, rows*cols, 1)
	for i := range nativeFrame.RawData {
		nativeFrame.RawData[i] = value
	}

	elements := baseElements(path, meta)
	elements = append(elements,
		mustNewElement(tag.Rows, []int{rows}),
		mustNewElement(tag.Columns, []int{cols}),
		mustNewElement(tag.BitsAllocated, []int{16}),
		mustNewElement(tag.BitsStored, []int{16}),
		mustNewElement(tag.HighBit, []int{15}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tag.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{
				{
					Encapsulated: false,
					NativeData:   nativeFrame,
				},
			},
		}),
	)

	return writeDataset(path, dicom.Dataset{Elements: elements})
}

// WriteImage8 is the 8-bit variant of WriteImage.
func WriteImage8(path string, meta Metadata, rows, cols int, value uint8) error {
	nativeFrame := frame.NewNativeFrame[uint8](8, rows, cols, rows*cols, 1)
	for i := range nativeFrame.RawData {
		nativeFrame.RawData[i] = value
	}

	elements := baseElements(path, meta)
	elements = append(elements,
		mustNewElement(tag.Rows, []int{rows}),
		mustNewElement(tag.Columns, []int{cols}),
		mustNewElement(tag.BitsAllocated, []int{8}),
		mustNewElement(tag.BitsStored, []int{8}),
		mustNewElement(tag.HighBit, []int{7}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tag.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{
				{
					Encapsulated: false,
					NativeData:   nativeFrame,
				},
			},
		}),
	)

	return writeDataset(path, dicom.Dataset{Elements: elements})
}

// WriteMetadataOnly writes a valid DICOM file without a pixel payload.
func WriteMetadataOnly(path string, meta Metadata) error {
	return writeDataset(path, dicom.Dataset{Elements: baseElements(path, meta)})
}

// WriteCorrupt writes a file with the right extension but no DICM magic
// word, i.e. foreign data inside the collection. The payload is longer
// than the 132-byte preamble so the parser reaches the magic-word check
// instead of hitting a short read.
func WriteCorrupt(path string) error {
	return os.WriteFile(path, bytes.Repeat([]byte("not a dicom file "), 16), 0644)
}

// baseElements builds the dataset skeleton every fixture needs: transfer
// syntax plus SOP identity so the writer can assemble the file meta
// group, and whichever metadata fields are set.
func baseElements(path string, meta Metadata) []*dicom.Element {
	elements := []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}),
		mustNewElement(tag.SOPClassUID, []string{"1.2.840.10008.5.1.4.1.1.4"}),
		mustNewElement(tag.SOPInstanceUID, []string{deterministicUID(path)}),
		mustNewElement(tag.SeriesInstanceUID, []string{deterministicUID(path + "_series")}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
	}

	if meta.PatientID != "" {
		elements = append(elements, mustNewElement(tag.PatientID, []string{meta.PatientID}))
	}
	if meta.PatientName != "" {
		elements = append(elements, mustNewElement(tag.PatientName, []string{meta.PatientName}))
	}
	if meta.StudyInstanceUID != "" {
		elements = append(elements, mustNewElement(tag.StudyInstanceUID, []string{meta.StudyInstanceUID}))
	}
	if meta.StudyDescription != "" {
		elements = append(elements, mustNewElement(tag.StudyDescription, []string{meta.StudyDescription}))
	}
	if meta.StudyDate != "" {
		elements = append(elements, mustNewElement(tag.StudyDate, []string{meta.StudyDate}))
	}
	if meta.Modality != "" {
		elements = append(elements, mustNewElement(tag.Modality, []string{meta.Modality}))
	}

	return elements
}

// writeDataset writes a DICOM dataset to a file.
func writeDataset(path string, ds dicom.Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds)
}

// mustNewElement panics on invalid element construction; fixture values
// are static, so a failure here is a programming error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("create element %v: %v", t, err))
	}
	return elem
}

// deterministicUID derives a stable UID from a seed string so fixtures
// are reproducible across runs.
func deterministicUID(seed string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return fmt.Sprintf("2.25.%d", h.Sum64())
}
