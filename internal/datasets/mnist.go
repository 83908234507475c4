package datasets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// MNISTBaseURL is the canonical location of the MNIST archives. The host
// often refuses downloads; pass a mirror to MNISTFetcher (born-fit
// download -mirror) instead. Digests are checked, so any mirror serving
// the original archives is safe.
const MNISTBaseURL = "http://yann.lecun.com/exdb/mnist/"

// MNIST file names.
const (
	MNISTTrainImages = "train-images-idx3-ubyte"
	MNISTTrainLabels = "train-labels-idx1-ubyte"
	MNISTTestImages  = "t10k-images-idx3-ubyte"
	MNISTTestLabels  = "t10k-labels-idx1-ubyte"
)

// MNISTClasses is the number of digit classes.
const MNISTClasses = 10

// MNISTArchives lists the four MNIST archives with their SHA-256 digests.
var MNISTArchives = []Archive{
	{
		Name:      MNISTTrainImages + ".gz",
		Extracted: MNISTTrainImages,
		Digest:    "440fcabf73cc546fa21475e81ea370265605f56be210a4024d2ca8f203523609",
	},
	{
		Name:      MNISTTrainLabels + ".gz",
		Extracted: MNISTTrainLabels,
		Digest:    "3552534a0a558bbed6aed32b30c495cca23d567ec52cac8be1a0730e8010255c",
	},
	{
		Name:      MNISTTestImages + ".gz",
		Extracted: MNISTTestImages,
		Digest:    "8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6",
	},
	{
		Name:      MNISTTestLabels + ".gz",
		Extracted: MNISTTestLabels,
		Digest:    "f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6",
	},
}

// MNISTFetcher returns a Fetcher for the MNIST archives.
//
// An empty baseURL selects MNISTBaseURL. Mirrors must serve byte-identical
// archives since digests are checked.
func MNISTFetcher(baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = MNISTBaseURL
	}
	archives := make([]Archive, len(MNISTArchives))
	copy(archives, MNISTArchives)

	return &Fetcher{
		BaseURL:  baseURL,
		Archives: archives,
	}
}

// DownloadMNIST downloads and extracts MNIST into dir from MNISTBaseURL.
// Use MNISTFetcher with a mirror when that host refuses the download.
func DownloadMNIST(ctx context.Context, dir string) error {
	f := MNISTFetcher("")
	f.Output = os.Stdout
	return f.Fetch(ctx, dir)
}

// LoadMNIST loads the extracted MNIST IDX files from dir.
//
// Images are normalized to [0, 1] with shape [1, rows, cols]; labels are
// one-hot vectors of shape [10].
//
// Parameters:
//   - dir: Directory containing the four extracted IDX files
//   - maxTrain: Maximum number of training samples (0 = all)
//   - maxTest: Maximum number of test samples (0 = all)
func LoadMNIST(dir string, maxTrain, maxTest int) (*TrainData, error) {
	xTrain, shape, err := loadMNISTImages(filepath.Join(dir, MNISTTrainImages))
	if err != nil {
		return nil, err
	}
	tTrain, err := loadMNISTLabels(filepath.Join(dir, MNISTTrainLabels))
	if err != nil {
		return nil, err
	}
	xTest, _, err := loadMNISTImages(filepath.Join(dir, MNISTTestImages))
	if err != nil {
		return nil, err
	}
	tTest, err := loadMNISTLabels(filepath.Join(dir, MNISTTestLabels))
	if err != nil {
		return nil, err
	}

	td := &TrainData{
		XShape: shape,
		TShape: []int{MNISTClasses},
		XTrain: xTrain,
		TTrain: tTrain,
		XTest:  xTest,
		TTest:  tTest,
	}
	td.Truncate(maxTrain, maxTest)

	if err := td.Validate(); err != nil {
		return nil, fmt.Errorf("mnist: %w", err)
	}
	return td, nil
}

func loadMNISTImages(path string) ([][]float32, []int, error) {
	raw, rows, cols, err := ReadIDXImagesFile(path)
	if err != nil {
		return nil, nil, err
	}

	images := make([][]float32, len(raw))
	for i, img := range raw {
		images[i] = make([]float32, len(img))
		for j, px := range img {
			images[i][j] = float32(px) / 255.0
		}
	}
	return images, []int{1, rows, cols}, nil
}

func loadMNISTLabels(path string) ([][]float32, error) {
	raw, err := ReadIDXLabelsFile(path)
	if err != nil {
		return nil, err
	}
	return OneHot(raw, MNISTClasses)
}

// OneHot expands class indices into one-hot vectors.
func OneHot(labels []byte, classes int) ([][]float32, error) {
	out := make([][]float32, len(labels))
	for i, l := range labels {
		if int(l) >= classes {
			return nil, fmt.Errorf("label %d at index %d out of range [0, %d)", l, i, classes)
		}
		out[i] = make([]float32, classes)
		out[i][l] = 1
	}
	return out, nil
}
