package usecase

import (
	"strings"

	"cloudvision_backend/internal/feature/imageanalysis/domain/entity"
)

// MapAnnotations はアノテーション結果をドメインファクトに変換します。副作用はありません。
//
//   - ラベルは受け取った順序を保ち、常に非nilのスライスを返します
//   - ロゴは最初の候補のみを対象とし、説明が空の場合は省略します
//   - ランドマークは最初の候補のみを対象とし、座標を持たない場合は省略します
func MapAnnotations(r entity.AnnotationResult) ([]entity.LabelFact, *entity.LogoFact, *entity.LandmarkFact) {
	labels := make([]entity.LabelFact, 0, len(r.Labels))
	for _, l := range r.Labels {
		labels = append(labels, entity.LabelFact{
			Name:       l.Description,
			Confidence: l.Confidence,
		})
	}

	var logo *entity.LogoFact
	if l, ok := r.Logo(); ok && strings.TrimSpace(l.Description) != "" {
		logo = &entity.LogoFact{BrandName: l.Description}
	}

	var landmark *entity.LandmarkFact
	if l, ok := r.Landmark(); ok && len(l.Locations) > 0 {
		landmark = &entity.LandmarkFact{
			Name:      l.Description,
			Latitude:  l.Locations[0].Latitude,
			Longitude: l.Locations[0].Longitude,
		}
	}

	return labels, logo, landmark
}
