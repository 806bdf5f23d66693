package codec

import (
	"bytes"
	"encoding/binary"
	"github.com/klauspost/compress/zlib"
	"hash/crc32"
	"io"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	filterNone = iota
	filterSub
	filterUp
	filterAverage
	filterPaeth
	filterCount
)

//8位 RGB
const rgbBytesPerPixel = 3

//将 RGB 像素写为 PNG，level 为 zlib 压缩等级 0-9，optimize 时逐行选择滤波器
func writePNG(w io.Writer, width, height int, pix []byte, level int, optimize bool) error {
	if _, err := w.Write(pngSignature); err != nil {
		return err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8  //bit depth
	ihdr[9] = 2  //color type: truecolor
	ihdr[10] = 0 //compression
	ihdr[11] = 0 //filter
	ihdr[12] = 0 //interlace
	if err := writeChunk(w, "IHDR", ihdr); err != nil {
		return err
	}

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, level)
	if err != nil {
		return err
	}
	if err := writeRows(zw, width, height, pix, optimize); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := writeChunk(w, "IDAT", idat.Bytes()); err != nil {
		return err
	}
	return writeChunk(w, "IEND", nil)
}

func writeChunk(w io.Writer, name string, data []byte) error {
	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], name)
	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(data)
	footer := make([]byte, 4)
	binary.BigEndian.PutUint32(footer, crc.Sum32())

	if _, err := w.Write(header); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := w.Write(footer)
	return err
}

func writeRows(w io.Writer, width, height int, pix []byte, optimize bool) error {
	stride := width * rgbBytesPerPixel
	prev := make([]byte, stride)
	var candidates [filterCount][]byte
	for f := range candidates {
		candidates[f] = make([]byte, stride+1)
	}
	for y := 0; y < height; y++ {
		cur := pix[y*stride : (y+1)*stride]
		out := candidates[filterNone]
		out[0] = filterNone
		copy(out[1:], cur)
		if optimize {
			best := sumAbs(out[1:])
			for f := filterSub; f < filterCount; f++ {
				c := candidates[f]
				c[0] = byte(f)
				applyFilter(c[1:], cur, prev, f)
				if s := sumAbs(c[1:]); s < best {
					best = s
					out = c
				}
			}
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
		//当前行成为下一行的参考行
		prev = cur
	}
	return nil
}

func applyFilter(dst, cur, prev []byte, f int) {
	const bpp = rgbBytesPerPixel
	for i := range cur {
		var a, b, c byte
		if i >= bpp {
			a = cur[i-bpp]
			c = prev[i-bpp]
		}
		b = prev[i]
		switch f {
		case filterSub:
			dst[i] = cur[i] - a
		case filterUp:
			dst[i] = cur[i] - b
		case filterAverage:
			dst[i] = cur[i] - byte((int(a)+int(b))/2)
		case filterPaeth:
			dst[i] = cur[i] - paeth(a, b, c)
		default:
			dst[i] = cur[i]
		}
	}
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

//把每个字节视作有符号数求绝对值和，常用的滤波选择启发式
func sumAbs(row []byte) int {
	s := 0
	for _, v := range row {
		s += abs(int(int8(v)))
	}
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
