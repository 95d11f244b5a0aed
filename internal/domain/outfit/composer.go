package outfit

import "github.com/yanqian/fitgpt/internal/domain/wardrobe"

type partition struct {
	tops        []wardrobe.Item
	bottoms     []wardrobe.Item
	outerwear   []wardrobe.Item
	shoes       []wardrobe.Item
	accessories []wardrobe.Item
}

func partitionItems(items []wardrobe.Item) partition {
	var p partition
	for _, item := range items {
		switch {
		case item.IsCategory(wardrobe.CategoryTop):
			p.tops = append(p.tops, item)
		case item.IsCategory(wardrobe.CategoryBottom):
			p.bottoms = append(p.bottoms, item)
		case item.IsCategory(wardrobe.CategoryOuterwear):
			p.outerwear = append(p.outerwear, item)
		case item.IsCategory(wardrobe.CategoryShoes):
			p.shoes = append(p.shoes, item)
		case item.IsCategory(wardrobe.CategoryAccessory):
			p.accessories = append(p.accessories, item)
		}
	}
	return p
}

// Compose enumerates outfits anchored on exactly one top and one bottom. For every pair it
// emits the pair itself, the pair with each outerwear, with each shoe, with each
// shoe+outerwear and with each accessory. Outfits with identical item sets are collapsed,
// keeping the first in generation order. Without a top or a bottom nothing is produced.
func Compose(items []wardrobe.Item) [][]wardrobe.Item {
	p := partitionItems(items)
	if len(p.tops) == 0 || len(p.bottoms) == 0 {
		return nil
	}

	var (
		combos [][]wardrobe.Item
		seen   = make(map[Signature]struct{})
	)
	add := func(outfit ...wardrobe.Item) {
		sig := SignatureOf(outfit)
		if _, ok := seen[sig]; ok {
			return
		}
		seen[sig] = struct{}{}
		combos = append(combos, outfit)
	}

	for _, top := range p.tops {
		for _, bottom := range p.bottoms {
			add(top, bottom)
			for _, outer := range p.outerwear {
				add(top, bottom, outer)
			}
			for _, shoe := range p.shoes {
				add(top, bottom, shoe)
				for _, outer := range p.outerwear {
					add(top, bottom, shoe, outer)
				}
			}
			for _, acc := range p.accessories {
				add(top, bottom, acc)
			}
		}
	}
	return combos
}
